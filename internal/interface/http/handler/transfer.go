package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apptransfer "github.com/xiebiao/drawerbox/internal/application/transfer"
	"github.com/xiebiao/drawerbox/internal/interface/http/dto"
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
	"github.com/xiebiao/drawerbox/pkg/response"
)

// TransferHandler 导入导出HTTP处理器
type TransferHandler struct {
	exportUseCase *apptransfer.ExportUseCase
	importUseCase *apptransfer.ImportUseCase
}

// NewTransferHandler 创建导入导出处理器
func NewTransferHandler(
	exportUseCase *apptransfer.ExportUseCase,
	importUseCase *apptransfer.ImportUseCase,
) *TransferHandler {
	return &TransferHandler{
		exportUseCase: exportUseCase,
		importUseCase: importUseCase,
	}
}

// 各格式的下载文件名与MIME类型
var exportFormats = map[string]struct {
	filename    string
	contentType string
}{
	"csv":  {"inventory.csv", "text/csv"},
	"json": {"inventory.json", "application/json"},
	"txt":  {"inventory.txt", "text/plain"},
	"xlsx": {"inventory.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

// Export 导出库存文件
// GET /export/:format?cabinet=  format为csv/json/txt/xlsx
func (h *TransferHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.Param("format"))
	meta, ok := exportFormats[format]
	if !ok {
		response.Error(c, apperrors.ErrInvalidFileType)
		return
	}

	ctx := c.Request.Context()
	cabinet := c.Query("cabinet")

	var (
		data []byte
		err  error
	)
	switch format {
	case "csv":
		data, err = h.exportUseCase.CSV(ctx, cabinet)
	case "json":
		data, err = h.exportUseCase.JSON(ctx, cabinet)
	case "txt":
		data, err = h.exportUseCase.TXT(ctx, cabinet)
	case "xlsx":
		data, err = h.exportUseCase.XLSX(ctx, cabinet)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+meta.filename+`"`)
	c.Data(http.StatusOK, meta.contentType, data)
}

// Import 从上传文件导入库存
// POST /import/:format?cabinet=  multipart字段file
// 扩展名必须与format一致;行级失败跳过,整体仍算成功
func (h *TransferHandler) Import(c *gin.Context) {
	format := strings.ToLower(c.Param("format"))
	if _, ok := exportFormats[format]; !ok {
		response.Error(c, apperrors.ErrInvalidFileType)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: 缺少上传文件file")
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != "."+format {
		response.Error(c, apperrors.ErrInvalidFileType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: 无法读取上传文件")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	cabinet := c.Query("cabinet")

	var result *apptransfer.ImportResult
	switch format {
	case "csv":
		result, err = h.importUseCase.CSV(ctx, file, cabinet)
	case "json":
		result, err = h.importUseCase.JSON(ctx, file, cabinet)
	case "txt":
		result, err = h.importUseCase.TXT(ctx, file, cabinet)
	case "xlsx":
		result, err = h.importUseCase.XLSX(ctx, file, cabinet)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ImportResponse{
		Applied: result.Applied,
		Skipped: result.Skipped,
	})
}
