package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appinventory "github.com/xiebiao/drawerbox/internal/application/inventory"
	apptransfer "github.com/xiebiao/drawerbox/internal/application/transfer"
	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/internal/domain/history"
	"github.com/xiebiao/drawerbox/internal/infrastructure/config"
	"github.com/xiebiao/drawerbox/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/drawerbox/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/drawerbox/internal/interface/http/handler"
	"github.com/xiebiao/drawerbox/internal/interface/http/middleware"
	"github.com/xiebiao/drawerbox/pkg/metrics"
	"github.com/xiebiao/drawerbox/pkg/response"
	"github.com/xiebiao/drawerbox/pkg/sysinfo"
)

// main 主程序入口
// 说明：手动依赖注入,组装链 Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s\n", cfg.Database.Path)
	if cfg.Redis.Enabled {
		fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	} else {
		fmt.Printf("  - Redis: 未启用\n")
	}

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := sqlite.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 可选的Redis缓存
	var cache appinventory.Cache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		cache = redis.NewInventoryCache(redisClient)
	}

	// 5. 依赖注入（手动组装）

	// 基础设施层
	drawerRepo := sqlite.NewDrawerRepository(db)

	// 领域层
	journal := history.NewJournal()
	drawerService := drawer.NewService(drawerRepo, journal)

	// 应用层
	updateDrawerUseCase := appinventory.NewUpdateDrawerUseCase(drawerService, cache)
	getInventoryUseCase := appinventory.NewGetInventoryUseCase(drawerService, cache)
	getDrawerUseCase := appinventory.NewGetDrawerUseCase(drawerService)
	searchUseCase := appinventory.NewSearchUseCase(drawerService)
	bulkUpdateUseCase := appinventory.NewBulkUpdateUseCase(drawerService, cache)
	clearInventoryUseCase := appinventory.NewClearInventoryUseCase(drawerService, cache)
	undoRedoUseCase := appinventory.NewUndoRedoUseCase(drawerService, cache)
	listCabinetsUseCase := appinventory.NewListCabinetsUseCase(drawerService)
	exportUseCase := apptransfer.NewExportUseCase(drawerService)
	importUseCase := apptransfer.NewImportUseCase(drawerService, cache)

	// 接口层
	pageHandler := handler.NewPageHandler(searchUseCase, listCabinetsUseCase)
	inventoryHandler := handler.NewInventoryHandler(updateDrawerUseCase, bulkUpdateUseCase, clearInventoryUseCase, undoRedoUseCase)
	apiHandler := handler.NewAPIHandler(getInventoryUseCase, getDrawerUseCase, updateDrawerUseCase, listCabinetsUseCase, sysinfo.NewCollector())
	transferHandler := handler.NewTransferHandler(exportUseCase, importUseCase)

	// 6. 定时备份
	if cfg.Backup.Enabled {
		backupRunner := apptransfer.NewBackupRunner(drawerService, cfg.Backup.Path, cfg.Backup.Interval)
		go backupRunner.Start(context.Background())
		fmt.Printf("✓ 定时备份已启动: %s 每 %s\n", cfg.Backup.Path, cfg.Backup.Interval)
	}

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	r.LoadHTMLGlob("web/templates/*")

	// 8. 注册路由
	registerRoutes(r, pageHandler, inventoryHandler, apiHandler, transferHandler)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   库存API: GET http://localhost%s/api/inventory\n", addr)
	fmt.Printf("   指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	pageHandler *handler.PageHandler,
	inventoryHandler *handler.InventoryHandler,
	apiHandler *handler.APIHandler,
	transferHandler *handler.TransferHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 页面
	r.GET("/", pageHandler.Index)
	r.GET("/search", pageHandler.Search)

	// 表单与变更接口(页面表单直接提交)
	r.POST("/update", inventoryHandler.Update)
	r.POST("/bulk_update", inventoryHandler.BulkUpdate)
	r.POST("/clear", inventoryHandler.Clear)
	r.POST("/undo", inventoryHandler.Undo)
	r.POST("/redo", inventoryHandler.Redo)

	// 导入导出
	r.GET("/export/:format", transferHandler.Export)
	r.POST("/import/:format", transferHandler.Import)

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/inventory", apiHandler.Inventory)
		api.GET("/system-stats", apiHandler.SystemStats)

		api.GET("/cabinets", apiHandler.ListCabinets)
		cabinets := api.Group("/cabinets/:cabinet")
		{
			cabinets.GET("/drawers", apiHandler.ListDrawers)
			cabinets.POST("/drawers", apiHandler.CreateDrawer)
			cabinets.GET("/drawers/:key", apiHandler.GetDrawer)
			cabinets.PUT("/drawers/:key", apiHandler.PutDrawer)
			cabinets.DELETE("/drawers/:key", apiHandler.DeleteDrawer)
		}
	}
}
