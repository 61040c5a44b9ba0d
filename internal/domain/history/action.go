package history

// Kind 动作类型
// 区分Create/Update只影响撤销时的逆操作:
// - Create的逆操作是清空抽屉(恢复为空/0)
// - Update的逆操作是恢复之前的名称和数量
type Kind string

const (
	// KindCreate 抽屉原先为空(名称""且数量0),本次写入视为新建
	KindCreate Kind = "create"

	// KindUpdate 抽屉原先非空,本次写入视为修改
	KindUpdate Kind = "update"
)

// Action 一次可逆的抽屉变更记录
// 设计说明:
// 1. 记录变更前后的完整状态,撤销/重做都只依赖本记录,不需要查询数据库
// 2. Key使用"行字母+列号"的字符串形式(如"A1"),与存储层的键一致
type Action struct {
	Kind     Kind   // 动作类型(决定撤销时的逆操作)
	Key      string // 抽屉编号(如"A1")
	Cabinet  string // 所属柜子
	PrevName string // 变更前名称
	PrevQty  int    // 变更前数量
	NewName  string // 变更后名称
	NewQty   int    // 变更后数量
}
