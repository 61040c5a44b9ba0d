package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
)

// drawerRepository 抽屉仓储的SQLite实现
// 设计说明:
// 1. 实现domain/drawer.Repository接口
// 2. 读路径吞掉底层错误:记录日志并返回空结果,保证展示/导出可用
// 3. 写路径用INSERT ... ON CONFLICT实现幂等upsert,单条写入单事务提交
type drawerRepository struct {
	db *gorm.DB
}

// NewDrawerRepository 创建抽屉仓储
func NewDrawerRepository(db *gorm.DB) drawer.Repository {
	return &drawerRepository{db: db}
}

// GetInventory 获取柜子的全部抽屉,键大写
func (r *drawerRepository) GetInventory(ctx context.Context, cabinet string) drawer.Inventory {
	var models []DrawerModel
	if err := r.db.WithContext(ctx).
		Where("cabinet = ?", cabinet).
		Find(&models).Error; err != nil {
		log.Printf("[sqlite] 读取柜子%q库存失败: %v", cabinet, err)
		return drawer.Inventory{}
	}

	inv := make(drawer.Inventory, len(models))
	for _, m := range models {
		key := strings.ToUpper(m.Row + m.Column)
		inv[key] = drawer.Slot{Name: m.Name.String, Qty: int(m.Qty.Int64)}
	}
	return inv
}

// GetDrawer 获取单个抽屉,缺失或出错时返回空抽屉
func (r *drawerRepository) GetDrawer(ctx context.Context, key drawer.Key, cabinet string) drawer.Slot {
	var m DrawerModel
	err := r.db.WithContext(ctx).
		Where("`row` = ? AND `column` = ? AND cabinet = ?", key.Row, key.Column, cabinet).
		First(&m).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[sqlite] 读取抽屉%s(柜子%q)失败: %v", key, cabinet, err)
		}
		return drawer.Slot{}
	}
	return drawer.Slot{Name: m.Name.String, Qty: int(m.Qty.Int64)}
}

// WriteDrawer 幂等写入,冲突时覆盖名称和数量
func (r *drawerRepository) WriteDrawer(ctx context.Context, key drawer.Key, name string, qty int, cabinet string) error {
	m := DrawerModel{
		Cabinet: cabinet,
		Row:     key.Row,
		Column:  key.Column,
		Name:    sql.NullString{String: name, Valid: true},
		Qty:     sql.NullInt64{Int64: int64(qty), Valid: true},
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cabinet"}, {Name: "row"}, {Name: "column"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "qty"}),
		}).
		Create(&m).Error
	if err != nil {
		log.Printf("[sqlite] 写入抽屉%s(柜子%q)失败: %v", key, cabinet, err)
		return apperrors.Wrap(err, "写入抽屉失败")
	}
	return nil
}

// ClearAll 删除所有柜子的全部记录
func (r *drawerRepository) ClearAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&DrawerModel{}).Error
	if err != nil {
		log.Printf("[sqlite] 清空库存失败: %v", err)
		return apperrors.Wrap(err, "清空库存失败")
	}
	log.Println("[sqlite] 库存已清空(所有柜子)")
	return nil
}

// ListCabinets 列出所有非空柜子名,升序
func (r *drawerRepository) ListCabinets(ctx context.Context) []string {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&DrawerModel{}).
		Distinct("cabinet").
		Where("cabinet <> ''").
		Order("cabinet asc").
		Pluck("cabinet", &names).Error
	if err != nil {
		log.Printf("[sqlite] 读取柜子列表失败: %v", err)
		return []string{}
	}
	return names
}
