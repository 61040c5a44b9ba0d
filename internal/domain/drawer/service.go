package drawer

import (
	"context"
	"log"

	"github.com/xiebiao/drawerbox/internal/domain/history"
)

// Service 库存领域服务接口
// 设计说明:
// 1. 领域服务是唯一的变更入口:每次写入都经由它记录到撤销日志
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 撤销/重做返回bool而不是error:空栈和回放失败对调用方都是"未执行",
//    与读路径的降级策略保持一致
type Service interface {
	// UpdateDrawer 写入抽屉并记录可撤销动作
	// 业务规则:
	// - 先执行存储写入,成功后才记录动作,失败的写入绝不产生历史条目
	// - 原状态为空抽屉时动作类型为Create,否则为Update
	// - 任何新写入都使redo栈失效
	UpdateDrawer(ctx context.Context, key Key, name string, qty int, cabinet string) error

	// Undo 撤销最近一次变更
	// Create的逆操作是清空抽屉,Update的逆操作是恢复之前的值;
	// 回放失败时动作压回历史栈,可以重试
	Undo(ctx context.Context) bool

	// Redo 重做最近一次被撤销的变更
	// 回放失败时动作压回redo栈,可以重试
	Redo(ctx context.Context) bool

	// Inventory 获取柜子库存快照(未补齐)
	Inventory(ctx context.Context, cabinet string) Inventory

	// Drawer 获取单个抽屉内容(缺失时为空抽屉)
	Drawer(ctx context.Context, key Key, cabinet string) Slot

	// Cabinets 列出所有柜子名,升序
	Cabinets(ctx context.Context) []string

	// ClearAll 清空所有柜子的全部库存
	// 撤销日志保持不变:清空后仍可撤销单条历史变更
	ClearAll(ctx context.Context) error
}

// service 领域服务实现
type service struct {
	repo    Repository
	journal *history.Journal
}

// NewService 创建库存领域服务
func NewService(repo Repository, journal *history.Journal) Service {
	return &service{repo: repo, journal: journal}
}

// UpdateDrawer 写入抽屉并记录可撤销动作
func (s *service) UpdateDrawer(ctx context.Context, key Key, name string, qty int, cabinet string) error {
	// 1. 读取原状态,分类动作类型
	old := s.repo.GetDrawer(ctx, key, cabinet)

	kind := history.KindUpdate
	if old.IsEmpty() {
		kind = history.KindCreate
	}

	// 2. 先写库:写入失败时直接返回,不产生历史条目
	if err := s.repo.WriteDrawer(ctx, key, name, qty, cabinet); err != nil {
		return err
	}

	// 3. 写入成功后记录动作(同时清空redo栈)
	s.journal.Record(history.Action{
		Kind:     kind,
		Key:      key.String(),
		Cabinet:  cabinet,
		PrevName: old.Name,
		PrevQty:  old.Qty,
		NewName:  name,
		NewQty:   qty,
	})
	return nil
}

// Undo 撤销最近一次变更
func (s *service) Undo(ctx context.Context) bool {
	action, ok := s.journal.PopHistory()
	if !ok {
		log.Println("[drawer] 撤销失败: 历史栈为空")
		return false
	}

	// Create的逆操作是清空,Update的逆操作是恢复原值
	name, qty := "", 0
	if action.Kind == history.KindUpdate {
		name, qty = action.PrevName, action.PrevQty
	}

	key, err := ParseKey(action.Key)
	if err != nil {
		log.Printf("[drawer] 撤销失败: 历史动作的键非法 %q: %v", action.Key, err)
		return false
	}

	if err := s.repo.WriteDrawer(ctx, key, name, qty, action.Cabinet); err != nil {
		// 回放失败:动作压回历史栈,后续可以重试
		s.journal.PushHistory(action)
		log.Printf("[drawer] 撤销抽屉%s(柜子%q)失败: %v", action.Key, action.Cabinet, err)
		return false
	}

	s.journal.PushRedo(action)
	log.Printf("[drawer] 撤销成功: 抽屉%s(柜子%q)", action.Key, action.Cabinet)
	return true
}

// Redo 重做最近一次被撤销的变更
func (s *service) Redo(ctx context.Context) bool {
	action, ok := s.journal.PopRedo()
	if !ok {
		log.Println("[drawer] 重做失败: redo栈为空")
		return false
	}

	key, err := ParseKey(action.Key)
	if err != nil {
		log.Printf("[drawer] 重做失败: 历史动作的键非法 %q: %v", action.Key, err)
		return false
	}

	if err := s.repo.WriteDrawer(ctx, key, action.NewName, action.NewQty, action.Cabinet); err != nil {
		// 回放失败:动作压回redo栈,后续可以重试
		s.journal.PushRedo(action)
		log.Printf("[drawer] 重做抽屉%s(柜子%q)失败: %v", action.Key, action.Cabinet, err)
		return false
	}

	s.journal.PushHistory(action)
	log.Printf("[drawer] 重做成功: 抽屉%s(柜子%q)", action.Key, action.Cabinet)
	return true
}

// Inventory 获取柜子库存快照
func (s *service) Inventory(ctx context.Context, cabinet string) Inventory {
	return s.repo.GetInventory(ctx, cabinet)
}

// Drawer 获取单个抽屉内容
func (s *service) Drawer(ctx context.Context, key Key, cabinet string) Slot {
	return s.repo.GetDrawer(ctx, key, cabinet)
}

// Cabinets 列出所有柜子名
func (s *service) Cabinets(ctx context.Context) []string {
	return s.repo.ListCabinets(ctx)
}

// ClearAll 清空所有库存
func (s *service) ClearAll(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}
