package inventory

import (
	"context"
	"log"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
)

// ClearInventoryUseCase 清空库存用例
// 清空是全局的、不可逆的:删除所有柜子的全部记录并失效全部缓存;
// 撤销日志不受影响,历史变更仍可逐条撤销
type ClearInventoryUseCase struct {
	drawerService drawer.Service
	cache         Cache
}

// NewClearInventoryUseCase 创建清空库存用例
func NewClearInventoryUseCase(drawerService drawer.Service, cache Cache) *ClearInventoryUseCase {
	return &ClearInventoryUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// Execute 执行清空
func (uc *ClearInventoryUseCase) Execute(ctx context.Context) error {
	if err := uc.drawerService.ClearAll(ctx); err != nil {
		return err
	}
	invalidateAll(ctx, uc.cache)
	log.Println("[inventory] 库存已清空(所有柜子)")
	return nil
}
