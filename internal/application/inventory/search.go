package inventory

import (
	"context"
	"strconv"
	"strings"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
)

// SearchUseCase 库存搜索用例
// 设计说明:
// 1. 在补齐后的库存上做子串匹配:抽屉编号、名称(大小写不敏感)、数量的十进制表示
// 2. 空查询返回完整的补齐库存(与主页展示一致)
type SearchUseCase struct {
	drawerService drawer.Service
}

// NewSearchUseCase 创建库存搜索用例
func NewSearchUseCase(drawerService drawer.Service) *SearchUseCase {
	return &SearchUseCase{drawerService: drawerService}
}

// SearchRequest 搜索请求DTO
type SearchRequest struct {
	Cabinet string // 柜子名,空时使用默认柜子
	Query   string // 搜索词
}

// Execute 执行搜索,返回匹配的库存子集
func (uc *SearchUseCase) Execute(ctx context.Context, req SearchRequest) drawer.Inventory {
	cabinet := req.Cabinet
	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}
	query := strings.ToLower(strings.TrimSpace(req.Query))

	full := drawer.Pad(uc.drawerService.Inventory(ctx, cabinet))
	if query == "" {
		return full
	}

	filtered := drawer.Inventory{}
	for key, slot := range full {
		if strings.Contains(strings.ToLower(key), query) ||
			strings.Contains(strings.ToLower(slot.Name), query) ||
			strings.Contains(strconv.Itoa(slot.Qty), query) {
			filtered[key] = slot
		}
	}
	return filtered
}
