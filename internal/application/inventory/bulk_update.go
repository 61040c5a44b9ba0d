package inventory

import (
	"context"
	"log"
	"strings"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// BulkUpdateUseCase 批量文本更新用例
// 设计说明:
// 1. 输入是换行分隔的记录块,每行"编号,名称,数量"或"首字段,数量"
// 2. 逐行解析并写入,格式非法的行跳过并记录日志——部分成功是常态,
//    批次整体跑完即视为成功
// 3. 每条成功写入都是一个独立的可撤销动作
// 4. 解析每行前重新获取库存快照,空位分配和编号匹配基于最新状态
type BulkUpdateUseCase struct {
	drawerService drawer.Service
	cache         Cache
}

// NewBulkUpdateUseCase 创建批量更新用例
func NewBulkUpdateUseCase(drawerService drawer.Service, cache Cache) *BulkUpdateUseCase {
	return &BulkUpdateUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// BulkUpdateRequest 批量更新请求DTO
type BulkUpdateRequest struct {
	Cabinet string // 柜子名,空时使用默认柜子
	Text    string // 换行分隔的记录块
}

// BulkUpdateResponse 批量更新结果
type BulkUpdateResponse struct {
	Applied int // 成功写入的行数
	Skipped int // 跳过的行数(格式非法或写入失败)
}

// Execute 执行批量文本更新
func (uc *BulkUpdateUseCase) Execute(ctx context.Context, req BulkUpdateRequest) *BulkUpdateResponse {
	cabinet := req.Cabinet
	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}

	resolver := drawer.NewResolver(func() drawer.Inventory {
		return uc.drawerService.Inventory(ctx, cabinet)
	})

	resp := &BulkUpdateResponse{}
	for _, line := range strings.Split(req.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		target, err := resolver.ResolveFields(parts)
		if err != nil {
			log.Printf("[inventory] 批量更新跳过行%q(柜子%q): %v", line, cabinet, err)
			resp.Skipped++
			continue
		}

		if err := uc.drawerService.UpdateDrawer(ctx, target.Key, target.Name, target.Qty, cabinet); err != nil {
			log.Printf("[inventory] 批量更新写入行%q(柜子%q)失败: %v", line, cabinet, err)
			resp.Skipped++
			continue
		}
		resp.Applied++
	}

	if resp.Applied > 0 {
		invalidate(ctx, uc.cache, cabinet)
	}
	metrics.AddCounterVec(metrics.ImportRowsTotal, map[string]string{"format": "bulk", "result": "applied"}, float64(resp.Applied))
	metrics.AddCounterVec(metrics.ImportRowsTotal, map[string]string{"format": "bulk", "result": "skipped"}, float64(resp.Skipped))
	return resp
}
