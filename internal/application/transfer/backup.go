package transfer

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// BackupRunner 定时全量CSV备份
// 设计说明:
// 1. 独立的后台goroutine按固定间隔把所有柜子的补齐库存写到一个CSV文件
// 2. 备份只读不加锁:前台写入并发进行时,备份是尽力而为的快照,
//    不是一致性关键的产物
// 3. 先写临时文件再重命名,避免写到一半的备份覆盖掉上一份完整备份
type BackupRunner struct {
	drawerService drawer.Service
	path          string
	interval      time.Duration
}

// NewBackupRunner 创建备份任务
func NewBackupRunner(drawerService drawer.Service, path string, interval time.Duration) *BackupRunner {
	return &BackupRunner{
		drawerService: drawerService,
		path:          path,
		interval:      interval,
	}
}

// Start 启动定时备份,ctx取消时退出
// 在独立goroutine中调用: go runner.Start(ctx)
func (b *BackupRunner) Start(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	log.Printf("[backup] 定时备份已启动: 每%v写入%s", b.interval, b.path)
	for {
		select {
		case <-ctx.Done():
			log.Println("[backup] 定时备份已停止")
			return
		case <-ticker.C:
			if err := b.RunOnce(ctx); err != nil {
				metrics.IncCounterVec(metrics.BackupRunsTotal, map[string]string{"result": "failure"})
				log.Printf("[backup] 备份失败: %v", err)
				continue
			}
			metrics.IncCounterVec(metrics.BackupRunsTotal, map[string]string{"result": "success"})
		}
	}
}

// RunOnce 执行一次全量备份
// 输出列: Cabinet,Drawer,Name,Quantity;柜子和抽屉键都按升序
func (b *BackupRunner) RunOnce(ctx context.Context) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := b.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Cabinet", "Drawer", "Name", "Quantity"}); err != nil {
		f.Close()
		return err
	}

	cabinets := b.drawerService.Cabinets(ctx)
	if len(cabinets) == 0 {
		log.Println("[backup] 没有任何柜子,备份只含表头")
	}
	for _, cabinet := range cabinets {
		inv := drawer.Pad(b.drawerService.Inventory(ctx, cabinet))

		keys := make([]string, 0, len(inv))
		for k := range inv {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			slot := inv[key]
			if err := w.Write([]string{cabinet, key, slot.Name, strconv.Itoa(slot.Qty)}); err != nil {
				f.Close()
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp, b.path); err != nil {
		return err
	}
	log.Printf("[backup] 全量库存已备份到%s", b.path)
	return nil
}
