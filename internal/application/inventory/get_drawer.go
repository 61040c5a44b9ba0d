package inventory

import (
	"context"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
)

// GetDrawerUseCase 单抽屉查询用例
type GetDrawerUseCase struct {
	drawerService drawer.Service
}

// NewGetDrawerUseCase 创建单抽屉查询用例
func NewGetDrawerUseCase(drawerService drawer.Service) *GetDrawerUseCase {
	return &GetDrawerUseCase{drawerService: drawerService}
}

// GetDrawerRequest 查询请求DTO
type GetDrawerRequest struct {
	ID      string // 抽屉编号
	Cabinet string // 柜子名,空时使用默认柜子
}

// Execute 返回抽屉内容;缺失的抽屉是空抽屉,不是错误
func (uc *GetDrawerUseCase) Execute(ctx context.Context, req GetDrawerRequest) (drawer.Slot, error) {
	key, err := drawer.ParseKey(req.ID)
	if err != nil {
		return drawer.Slot{}, err
	}
	cabinet := req.Cabinet
	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}
	return uc.drawerService.Drawer(ctx, key, cabinet), nil
}
