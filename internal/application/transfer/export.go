package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
	"github.com/xiebiao/drawerbox/pkg/metrics"
)

// 导出文件的统一表头与工作表名
const (
	sheetName = "Inventory"
)

var exportHeader = []string{"ID", "Name", "Quantity"}

// ExportUseCase 库存导出用例
// 设计说明:
// 1. 所有格式共享同一数据形状:补齐后的库存按键升序展平为(编号,名称,数量)
// 2. 导出是纯读操作,不加锁:并发写入时得到的是尽力而为的快照
// 3. 输出为内存字节流,由接口层决定Content-Type和下载文件名
type ExportUseCase struct {
	drawerService drawer.Service
}

// NewExportUseCase 创建导出用例
func NewExportUseCase(drawerService drawer.Service) *ExportUseCase {
	return &ExportUseCase{drawerService: drawerService}
}

// rows 返回补齐后的库存,按键升序展平
func (uc *ExportUseCase) rows(ctx context.Context, cabinet string) []row {
	inv := drawer.Pad(uc.drawerService.Inventory(ctx, cabinet))

	keys := make([]string, 0, len(inv))
	for k := range inv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]row, 0, len(keys))
	for _, k := range keys {
		out = append(out, row{Key: k, Name: inv[k].Name, Qty: inv[k].Qty})
	}
	return out
}

type row struct {
	Key  string
	Name string
	Qty  int
}

// CSV 导出为CSV:表头ID,Name,Quantity
func (uc *ExportUseCase) CSV(ctx context.Context, cabinet string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, apperrors.Wrap(err, "导出CSV失败")
	}
	for _, r := range uc.rows(ctx, cabinet) {
		if err := w.Write([]string{r.Key, r.Name, strconv.Itoa(r.Qty)}); err != nil {
			return nil, apperrors.Wrap(err, "导出CSV失败")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(err, "导出CSV失败")
	}

	metrics.IncCounterVec(metrics.ExportsTotal, map[string]string{"format": "csv"})
	return buf.Bytes(), nil
}

// JSON 导出为JSON:编号到{name,qty}的映射,2空格缩进,键升序
func (uc *ExportUseCase) JSON(ctx context.Context, cabinet string) ([]byte, error) {
	inv := drawer.Pad(uc.drawerService.Inventory(ctx, cabinet))

	payload, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(err, "导出JSON失败")
	}

	metrics.IncCounterVec(metrics.ExportsTotal, map[string]string{"format": "json"})
	return payload, nil
}

// TXT 导出为纯文本:每行"编号: 名称 (数量)",与文本导入格式互逆
func (uc *ExportUseCase) TXT(ctx context.Context, cabinet string) ([]byte, error) {
	var sb strings.Builder
	for i, r := range uc.rows(ctx, cabinet) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s (%d)", r.Key, r.Name, r.Qty)
	}

	metrics.IncCounterVec(metrics.ExportsTotal, map[string]string{"format": "txt"})
	return []byte(sb.String()), nil
}

// XLSX 导出为Excel工作簿,单工作表"Inventory"
func (uc *ExportUseCase) XLSX(ctx context.Context, cabinet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 新工作簿自带"Sheet1",重命名为目标工作表
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, apperrors.Wrap(err, "导出Excel失败")
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]interface{}{"ID", "Name", "Quantity"}); err != nil {
		return nil, apperrors.Wrap(err, "导出Excel失败")
	}
	for i, r := range uc.rows(ctx, cabinet) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, apperrors.Wrap(err, "导出Excel失败")
		}
		if err := f.SetSheetRow(sheetName, cell, &[]interface{}{r.Key, r.Name, r.Qty}); err != nil {
			return nil, apperrors.Wrap(err, "导出Excel失败")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Wrap(err, "导出Excel失败")
	}

	metrics.IncCounterVec(metrics.ExportsTotal, map[string]string{"format": "xlsx"})
	return buf.Bytes(), nil
}
