package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/drawerbox/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2 + SQLite驱动,库存是单文件关系库
// 2. 数据库文件所在目录不存在时自动创建
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 确保数据库文件目录存在
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. SQLite是单写者数据库,连接数限制为1避免database is locked
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Println("✓ 数据库连接成功:", cfg.Database.Path)

	// 5. 自动迁移表结构
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&DrawerModel{},
	)
}

// DrawerModel GORM抽屉模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/drawer的Slot/Inventory是领域类型，不依赖GORM
// 3. 复合主键(cabinet,row,column)唯一标识一个抽屉
// 4. Name/Qty可为NULL,读取时NULL按""/0处理(历史数据兼容)
type DrawerModel struct {
	Cabinet string         `gorm:"primaryKey;size:100;not null;default:Default;comment:柜子名"`
	Row     string         `gorm:"primaryKey;column:row;size:10;not null;comment:行字母"`
	Column  string         `gorm:"primaryKey;column:column;size:10;not null;comment:列号"`
	Name    sql.NullString `gorm:"size:200;comment:物品名称"`
	Qty     sql.NullInt64  `gorm:"comment:数量"`
}

// TableName 指定表名
func (DrawerModel) TableName() string {
	return "drawers"
}
