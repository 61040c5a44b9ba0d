package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/drawerbox/internal/application/inventory"
	"github.com/xiebiao/drawerbox/internal/domain/drawer"
)

// PageHandler 页面处理器(HTML库存网格)
type PageHandler struct {
	searchUseCase       *appinventory.SearchUseCase
	listCabinetsUseCase *appinventory.ListCabinetsUseCase
}

// NewPageHandler 创建页面处理器
func NewPageHandler(
	searchUseCase *appinventory.SearchUseCase,
	listCabinetsUseCase *appinventory.ListCabinetsUseCase,
) *PageHandler {
	return &PageHandler{
		searchUseCase:       searchUseCase,
		listCabinetsUseCase: listCabinetsUseCase,
	}
}

// Index 库存网格主页
// GET /?cabinet=
// 说明:空搜索词等价于完整补齐库存,主页和搜索页共用一个用例和模板
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, c.Query("cabinet"), "")
}

// Search 库存搜索页
// GET /search?q=&cabinet=
// 按编号、名称或数量的字符串形式做大小写不敏感的子串匹配
func (h *PageHandler) Search(c *gin.Context) {
	h.render(c, c.Query("cabinet"), c.Query("q"))
}

func (h *PageHandler) render(c *gin.Context, cabinet, query string) {
	ctx := c.Request.Context()

	inv := h.searchUseCase.Execute(ctx, appinventory.SearchRequest{
		Cabinet: cabinet,
		Query:   query,
	})
	cabinets := h.listCabinetsUseCase.Execute(ctx)

	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}

	// html/template遍历map时键按升序输出,网格天然有序
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Cabinet":   cabinet,
		"Cabinets":  cabinets,
		"Query":     query,
		"Inventory": inv,
	})
}
