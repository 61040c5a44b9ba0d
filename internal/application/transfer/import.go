package transfer

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xiebiao/drawerbox/internal/application/inventory"
	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// ImportUseCase 库存导入用例
// 设计说明:
// 1. 四种格式(CSV/JSON/TXT/XLSX)共享同一解析引擎:每条记录经由
//    Resolver映射到具体抽屉,再经领域服务写入,成为独立的可撤销动作
// 2. 逐条跳过坏记录(字段数错误、数量非整数),批次整体跑完即为成功;
//    只有文件本身不可读/不可解析时才返回错误
// 3. 导入结果统计成功/跳过行数,供接口层回显
type ImportUseCase struct {
	drawerService drawer.Service
	cache         inventory.Cache
}

// NewImportUseCase 创建导入用例
func NewImportUseCase(drawerService drawer.Service, cache inventory.Cache) *ImportUseCase {
	return &ImportUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// ImportResult 导入结果
type ImportResult struct {
	Applied int // 成功写入的记录数
	Skipped int // 跳过的记录数
}

// CSV 从CSV导入
// 表头含ID/Name/Quantity时按列名取值,否则按位置(0:编号,1:名称,2:数量)
func (uc *ImportUseCase) CSV(ctx context.Context, r io.Reader, cabinet string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 行字段数不固定,坏行逐条跳过

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "CSV文件解析失败")
	}
	if len(records) == 0 {
		return &ImportResult{}, nil
	}

	// 表头定位:缺列时退回按位置导入
	idCol, nameCol, qtyCol := headerIndex(records[0])
	rows := records
	if idCol >= 0 && nameCol >= 0 && qtyCol >= 0 {
		rows = records[1:]
	} else {
		log.Println("[transfer] CSV表头缺少ID/Name/Quantity列,按位置导入(0:编号,1:名称,2:数量)")
		idCol, nameCol, qtyCol = 0, 1, 2
	}

	resolver := uc.newResolver(ctx, cabinet)
	result := &ImportResult{}
	for i, rec := range rows {
		if len(rec) == 0 {
			continue
		}
		if len(rec) <= idCol || len(rec) <= nameCol || len(rec) <= qtyCol {
			log.Printf("[transfer] CSV第%d行字段不足,跳过: %v", i+1, rec)
			result.Skipped++
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[qtyCol]))
		if err != nil {
			log.Printf("[transfer] CSV第%d行数量非整数,跳过: %v", i+1, rec)
			result.Skipped++
			continue
		}
		uc.apply(ctx, resolver, rec[idCol], rec[nameCol], qty, cabinet, result)
	}

	uc.finish(ctx, "csv", cabinet, result)
	return result, nil
}

// JSON 从JSON导入:编号到{name,qty}的映射
func (uc *ImportUseCase) JSON(ctx context.Context, r io.Reader, cabinet string) (*ImportResult, error) {
	var data map[string]struct {
		Name string          `json:"name"`
		Qty  json.RawMessage `json:"qty"`
	}
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "JSON文件解析失败: 期望编号到{name,qty}的映射")
	}

	resolver := uc.newResolver(ctx, cabinet)
	result := &ImportResult{}
	for id, details := range data {
		// 数量必须是整数,其他类型逐条跳过
		var qty int
		if err := json.Unmarshal(details.Qty, &qty); err != nil {
			log.Printf("[transfer] JSON条目%q数量非整数,跳过", id)
			result.Skipped++
			continue
		}
		uc.apply(ctx, resolver, id, details.Name, qty, cabinet, result)
	}

	uc.finish(ctx, "json", cabinet, result)
	return result, nil
}

// TXT 从纯文本导入
// 每行"编号: 名称 (数量)"或"编号,名称,数量"或"首字段,数量",空行跳过
func (uc *ImportUseCase) TXT(ctx context.Context, r io.Reader, cabinet string) (*ImportResult, error) {
	resolver := uc.newResolver(ctx, cabinet)
	result := &ImportResult{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		target, err := resolver.ResolveLine(line)
		if err != nil {
			log.Printf("[transfer] TXT第%d行解析失败,跳过: %q: %v", lineNo, line, err)
			result.Skipped++
			continue
		}
		uc.write(ctx, target, cabinet, result)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "TXT文件读取失败")
	}

	uc.finish(ctx, "txt", cabinet, result)
	return result, nil
}

// XLSX 从Excel导入:第一个工作表,表头必须含ID/Name/Quantity
func (uc *ImportUseCase) XLSX(ctx context.Context, r io.Reader, cabinet string) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "Excel文件解析失败")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "Excel工作表读取失败")
	}
	if len(rows) == 0 {
		return &ImportResult{}, nil
	}

	idCol, nameCol, qtyCol := headerIndex(rows[0])
	if idCol < 0 || nameCol < 0 || qtyCol < 0 {
		return nil, apperrors.New(apperrors.ErrCodeImportError, "Excel缺少必需的表头列(ID/Name/Quantity)")
	}

	resolver := uc.newResolver(ctx, cabinet)
	result := &ImportResult{}
	for i, rec := range rows[1:] {
		if len(rec) <= idCol || len(rec) <= nameCol || len(rec) <= qtyCol {
			log.Printf("[transfer] Excel第%d行字段不足,跳过: %v", i+2, rec)
			result.Skipped++
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[qtyCol]))
		if err != nil {
			log.Printf("[transfer] Excel第%d行数量非整数,跳过: %v", i+2, rec)
			result.Skipped++
			continue
		}
		uc.apply(ctx, resolver, rec[idCol], rec[nameCol], qty, cabinet, result)
	}

	uc.finish(ctx, "xlsx", cabinet, result)
	return result, nil
}

// newResolver 创建绑定到目标柜子的解析引擎,快照每次现取
func (uc *ImportUseCase) newResolver(ctx context.Context, cabinet string) *drawer.Resolver {
	return drawer.NewResolver(func() drawer.Inventory {
		return uc.drawerService.Inventory(ctx, cabinet)
	})
}

// apply 解析显式三字段记录并写入
func (uc *ImportUseCase) apply(ctx context.Context, resolver *drawer.Resolver, id, name string, qty int, cabinet string, result *ImportResult) {
	target, err := resolver.ResolveExplicit(id, name, qty)
	if err != nil {
		log.Printf("[transfer] 记录编号%q非法,跳过: %v", id, err)
		result.Skipped++
		return
	}
	uc.write(ctx, target, cabinet, result)
}

// write 经领域服务写入一条已解析记录
func (uc *ImportUseCase) write(ctx context.Context, target drawer.Target, cabinet string, result *ImportResult) {
	if err := uc.drawerService.UpdateDrawer(ctx, target.Key, target.Name, target.Qty, cabinet); err != nil {
		log.Printf("[transfer] 写入抽屉%s(柜子%q)失败,跳过: %v", target.Key, cabinet, err)
		result.Skipped++
		return
	}
	result.Applied++
}

// finish 失效缓存并打点
func (uc *ImportUseCase) finish(ctx context.Context, format, cabinet string, result *ImportResult) {
	if result.Applied > 0 && uc.cache != nil {
		uc.cache.Invalidate(ctx, cabinet)
	}
	metrics.AddCounterVec(metrics.ImportRowsTotal, map[string]string{"format": format, "result": "applied"}, float64(result.Applied))
	metrics.AddCounterVec(metrics.ImportRowsTotal, map[string]string{"format": format, "result": "skipped"}, float64(result.Skipped))
	log.Printf("[transfer] %s导入完成(柜子%q): 成功%d条,跳过%d条", strings.ToUpper(format), cabinet, result.Applied, result.Skipped)
}

// headerIndex 在表头里定位ID/Name/Quantity列,找不到返回-1
func headerIndex(header []string) (idCol, nameCol, qtyCol int) {
	idCol, nameCol, qtyCol = -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "ID":
			idCol = i
		case "Name":
			nameCol = i
		case "Quantity":
			qtyCol = i
		}
	}
	return idCol, nameCol, qtyCol
}
