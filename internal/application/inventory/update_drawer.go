package inventory

import (
	"context"
	"log"
	"strings"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// UpdateDrawerUseCase 单抽屉更新用例
// 设计说明:
// 1. 边界校验在这里完成:数量必须非负,编号必须可解析
// 2. 写入成功后失效该柜子的响应缓存
type UpdateDrawerUseCase struct {
	drawerService drawer.Service
	cache         Cache
}

// NewUpdateDrawerUseCase 创建单抽屉更新用例
func NewUpdateDrawerUseCase(drawerService drawer.Service, cache Cache) *UpdateDrawerUseCase {
	return &UpdateDrawerUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// UpdateDrawerRequest 更新请求DTO
type UpdateDrawerRequest struct {
	ID      string // 抽屉编号(如"A1")
	Name    string // 物品名称
	Qty     int    // 数量,必须非负
	Cabinet string // 柜子名,空时使用默认柜子
}

// Execute 执行单抽屉更新
func (uc *UpdateDrawerUseCase) Execute(ctx context.Context, req UpdateDrawerRequest) error {
	// 1. 边界校验
	if req.Qty < 0 {
		return drawer.ErrInvalidQuantity
	}
	key, err := drawer.ParseKey(req.ID)
	if err != nil {
		return err
	}
	cabinet := req.Cabinet
	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}

	// 2. 经由领域服务写入(记录可撤销动作)
	if err := uc.drawerService.UpdateDrawer(ctx, key, strings.TrimSpace(req.Name), req.Qty, cabinet); err != nil {
		metrics.IncCounterVec(metrics.DrawerUpdatesTotal, map[string]string{"result": "failure"})
		return err
	}

	// 3. 失效缓存并打点
	invalidate(ctx, uc.cache, cabinet)
	metrics.IncCounterVec(metrics.DrawerUpdatesTotal, map[string]string{"result": "success"})
	log.Printf("[inventory] 更新抽屉%s(柜子%q): 名称%q 数量%d", key, cabinet, req.Name, req.Qty)
	return nil
}
