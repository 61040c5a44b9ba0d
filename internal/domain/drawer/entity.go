package drawer

// DefaultCabinet 未指定柜子时使用的默认分区名
const DefaultCabinet = "Default"

// Slot 单个抽屉内容(值对象)
// 设计说明:
// 1. 名称""且数量0是规范的"空抽屉"状态——空是一个值,不是记录的缺失,
//    没有单独的删除墓碑
// 2. JSON标签与对外接口、导入导出格式保持一致
type Slot struct {
	Name string `json:"name"` // 物品名称,""表示未标注/空
	Qty  int    `json:"qty"`  // 数量
}

// IsEmpty 抽屉是否处于规范的空状态
func (s Slot) IsEmpty() bool {
	return s.Name == "" && s.Qty == 0
}

// Inventory 一个柜子的库存快照
// 键为抽屉编号的字符串形式(如"A1"),读取路径保证已大写
type Inventory map[string]Slot
