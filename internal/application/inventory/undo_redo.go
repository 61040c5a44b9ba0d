package inventory

import (
	"context"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// UndoRedoUseCase 撤销/重做用例
// 设计说明:
// 1. 执行结果是bool:false统一表示"未执行"(栈空或回放失败),与领域服务一致
// 2. 执行成功后无法得知受影响的柜子(动作在领域服务内部消费),
//    因此统一失效全部缓存
type UndoRedoUseCase struct {
	drawerService drawer.Service
	cache         Cache
}

// NewUndoRedoUseCase 创建撤销/重做用例
func NewUndoRedoUseCase(drawerService drawer.Service, cache Cache) *UndoRedoUseCase {
	return &UndoRedoUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// Undo 撤销最近一次变更
func (uc *UndoRedoUseCase) Undo(ctx context.Context) bool {
	ok := uc.drawerService.Undo(ctx)
	uc.finish(ctx, "undo", ok)
	return ok
}

// Redo 重做最近一次被撤销的变更
func (uc *UndoRedoUseCase) Redo(ctx context.Context) bool {
	ok := uc.drawerService.Redo(ctx)
	uc.finish(ctx, "redo", ok)
	return ok
}

func (uc *UndoRedoUseCase) finish(ctx context.Context, op string, ok bool) {
	result := "applied"
	if !ok {
		result = "noop"
	} else {
		invalidateAll(ctx, uc.cache)
	}
	metrics.IncCounterVec(metrics.HistoryOpsTotal, map[string]string{"op": op, "result": result})
}
