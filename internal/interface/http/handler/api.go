package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/drawerbox/internal/application/inventory"
	"github.com/xiebiao/drawerbox/internal/interface/http/dto"
	"github.com/xiebiao/drawerbox/pkg/response"
	"github.com/xiebiao/drawerbox/pkg/sysinfo"
)

// APIHandler JSON API处理器
type APIHandler struct {
	getInventoryUseCase *appinventory.GetInventoryUseCase
	getDrawerUseCase    *appinventory.GetDrawerUseCase
	updateDrawerUseCase *appinventory.UpdateDrawerUseCase
	listCabinetsUseCase *appinventory.ListCabinetsUseCase
	collector           *sysinfo.Collector
}

// NewAPIHandler 创建API处理器
func NewAPIHandler(
	getInventoryUseCase *appinventory.GetInventoryUseCase,
	getDrawerUseCase *appinventory.GetDrawerUseCase,
	updateDrawerUseCase *appinventory.UpdateDrawerUseCase,
	listCabinetsUseCase *appinventory.ListCabinetsUseCase,
	collector *sysinfo.Collector,
) *APIHandler {
	return &APIHandler{
		getInventoryUseCase: getInventoryUseCase,
		getDrawerUseCase:    getDrawerUseCase,
		updateDrawerUseCase: updateDrawerUseCase,
		listCabinetsUseCase: listCabinetsUseCase,
		collector:           collector,
	}
}

// Inventory 补齐库存JSON(裸载荷,带ETag协商缓存)
// GET /api/inventory?cabinet=
// 学习要点:协商缓存三件套
// 1. 响应头ETag是载荷的MD5,内容不变则值不变
// 2. 客户端用If-None-Match回传ETag,命中时返回304免去正文传输
// 3. Cache-Control允许中间层缓存5分钟,与Redis侧的TTL一致
func (h *APIHandler) Inventory(c *gin.Context) {
	result, err := h.getInventoryUseCase.Execute(c.Request.Context(), appinventory.GetInventoryRequest{
		Cabinet:     c.Query("cabinet"),
		IfNoneMatch: c.GetHeader("If-None-Match"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("ETag", result.ETag)
	c.Header("Cache-Control", "public, max-age=300")
	if result.NotModified {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json", result.Payload)
}

// ListCabinets 柜子名列表
// GET /api/cabinets
func (h *APIHandler) ListCabinets(c *gin.Context) {
	response.Success(c, h.listCabinetsUseCase.Execute(c.Request.Context()))
}

// ListDrawers 指定柜子的补齐库存
// GET /api/cabinets/:cabinet/drawers
func (h *APIHandler) ListDrawers(c *gin.Context) {
	result, err := h.getInventoryUseCase.Execute(c.Request.Context(), appinventory.GetInventoryRequest{
		Cabinet: c.Param("cabinet"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result.Payload)
}

// GetDrawer 查询单个抽屉
// GET /api/cabinets/:cabinet/drawers/:key
// 缺失的抽屉返回空抽屉而不是404
func (h *APIHandler) GetDrawer(c *gin.Context) {
	cabinet := c.Param("cabinet")
	key := c.Param("key")

	slot, err := h.getDrawerUseCase.Execute(c.Request.Context(), appinventory.GetDrawerRequest{
		ID:      key,
		Cabinet: cabinet,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.DrawerResponse{
		ID:      key,
		Name:    slot.Name,
		Qty:     slot.Qty,
		Cabinet: cabinet,
	})
}

// CreateDrawer 写入抽屉(编号在请求体)
// POST /api/cabinets/:cabinet/drawers
func (h *APIHandler) CreateDrawer(c *gin.Context) {
	var req dto.UpdateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	h.writeDrawer(c, req.ID, req.Name, *req.Qty)
}

// PutDrawer 写入抽屉(编号在路径)
// PUT /api/cabinets/:cabinet/drawers/:key
func (h *APIHandler) PutDrawer(c *gin.Context) {
	var req dto.WriteDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	h.writeDrawer(c, c.Param("key"), req.Name, *req.Qty)
}

// DeleteDrawer 清空抽屉
// DELETE /api/cabinets/:cabinet/drawers/:key
// 清空就是写入空名称和数量0,同样可撤销
func (h *APIHandler) DeleteDrawer(c *gin.Context) {
	h.writeDrawer(c, c.Param("key"), "", 0)
}

func (h *APIHandler) writeDrawer(c *gin.Context, id, name string, qty int) {
	err := h.updateDrawerUseCase.Execute(c.Request.Context(), appinventory.UpdateDrawerRequest{
		ID:      id,
		Name:    name,
		Qty:     qty,
		Cabinet: c.Param("cabinet"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// SystemStats 主机运行状态
// GET /api/system-stats
// 采集失败的项降级为"N/A"或0,接口本身不报错
func (h *APIHandler) SystemStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.collector.Collect())
}
