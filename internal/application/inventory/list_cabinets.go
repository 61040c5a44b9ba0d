package inventory

import (
	"context"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
)

// ListCabinetsUseCase 柜子列表查询用例
type ListCabinetsUseCase struct {
	drawerService drawer.Service
}

// NewListCabinetsUseCase 创建柜子列表查询用例
func NewListCabinetsUseCase(drawerService drawer.Service) *ListCabinetsUseCase {
	return &ListCabinetsUseCase{drawerService: drawerService}
}

// Execute 返回所有柜子名,升序;从未写入过数据时返回空列表
func (uc *ListCabinetsUseCase) Execute(ctx context.Context) []string {
	return uc.drawerService.Cabinets(ctx)
}
