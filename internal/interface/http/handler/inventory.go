package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/drawerbox/internal/application/inventory"
	"github.com/xiebiao/drawerbox/internal/interface/http/dto"
	"github.com/xiebiao/drawerbox/pkg/response"
)

// InventoryHandler 库存变更HTTP处理器
type InventoryHandler struct {
	updateDrawerUseCase   *appinventory.UpdateDrawerUseCase
	bulkUpdateUseCase     *appinventory.BulkUpdateUseCase
	clearInventoryUseCase *appinventory.ClearInventoryUseCase
	undoRedoUseCase       *appinventory.UndoRedoUseCase
}

// NewInventoryHandler 创建库存变更处理器
func NewInventoryHandler(
	updateDrawerUseCase *appinventory.UpdateDrawerUseCase,
	bulkUpdateUseCase *appinventory.BulkUpdateUseCase,
	clearInventoryUseCase *appinventory.ClearInventoryUseCase,
	undoRedoUseCase *appinventory.UndoRedoUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		updateDrawerUseCase:   updateDrawerUseCase,
		bulkUpdateUseCase:     bulkUpdateUseCase,
		clearInventoryUseCase: clearInventoryUseCase,
		undoRedoUseCase:       undoRedoUseCase,
	}
}

// Update 更新单个抽屉
// POST /update
// 请求体 {id,name,qty,cabinet};数量0清空名称,写入成功后才记入历史
func (h *InventoryHandler) Update(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.UpdateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	err := h.updateDrawerUseCase.Execute(c.Request.Context(), appinventory.UpdateDrawerRequest{
		ID:      req.ID,
		Name:    req.Name,
		Qty:     *req.Qty,
		Cabinet: req.Cabinet,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}

// BulkUpdate 批量文本更新
// POST /bulk_update?cabinet= 表单字段bulk_input
// 逐行解析,坏行跳过,完成后跳回当前柜子的网格页
func (h *InventoryHandler) BulkUpdate(c *gin.Context) {
	cabinet := c.Query("cabinet")

	h.bulkUpdateUseCase.Execute(c.Request.Context(), appinventory.BulkUpdateRequest{
		Cabinet: cabinet,
		Text:    c.PostForm("bulk_input"),
	})

	c.Redirect(http.StatusFound, "/?cabinet="+url.QueryEscape(cabinet))
}

// Clear 清空全部柜子
// POST /clear
// 撤销/重做栈不受影响
func (h *InventoryHandler) Clear(c *gin.Context) {
	if err := h.clearInventoryUseCase.Execute(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Undo 撤销最近一次变更
// POST /undo
// 历史为空时success=false,不是错误
func (h *InventoryHandler) Undo(c *gin.Context) {
	ok := h.undoRedoUseCase.Undo(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// Redo 重做最近一次被撤销的变更
// POST /redo
func (h *InventoryHandler) Redo(c *gin.Context) {
	ok := h.undoRedoUseCase.Redo(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": ok})
}
