package drawer

import (
	"context"
)

// Repository 抽屉仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(SQLite/GORM)
// 2. 读路径绝不向调用方抛错:底层失败时返回空结果并记录日志,
//    保证展示、搜索、导出等读取场景的可用性
// 3. 写路径必须上抛错误:静默吞掉写失败会让撤销日志与存储状态脱节
type Repository interface {
	// GetInventory 获取指定柜子的全部抽屉(未补齐,键已大写)
	// 底层错误被吞掉并记录日志,返回空map
	GetInventory(ctx context.Context, cabinet string) Inventory

	// GetDrawer 获取单个抽屉内容
	// 不存在或底层错误时返回空抽屉{"",0}
	GetDrawer(ctx context.Context, key Key, cabinet string) Slot

	// WriteDrawer 幂等写入(insert-or-replace),键为(cabinet,row,column)
	// 每次调用独立提交,单条写入原子
	WriteDrawer(ctx context.Context, key Key, name string, qty int, cabinet string) error

	// ClearAll 删除所有柜子的全部记录(不可逆)
	ClearAll(ctx context.Context) error

	// ListCabinets 列出所有非空柜子名,按字典序升序
	// 底层错误被吞掉并记录日志,返回空切片
	ListCabinets(ctx context.Context) []string
}
