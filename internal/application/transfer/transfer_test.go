package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/internal/domain/history"
)

// memRepo 内存仓储,用于导入导出测试
type memRepo struct {
	data map[string]drawer.Inventory
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string]drawer.Inventory{}}
}

func (m *memRepo) GetInventory(_ context.Context, cabinet string) drawer.Inventory {
	inv := drawer.Inventory{}
	for k, v := range m.data[cabinet] {
		inv[k] = v
	}
	return inv
}

func (m *memRepo) GetDrawer(_ context.Context, key drawer.Key, cabinet string) drawer.Slot {
	return m.data[cabinet][key.String()]
}

func (m *memRepo) WriteDrawer(_ context.Context, key drawer.Key, name string, qty int, cabinet string) error {
	if m.data[cabinet] == nil {
		m.data[cabinet] = drawer.Inventory{}
	}
	m.data[cabinet][key.String()] = drawer.Slot{Name: name, Qty: qty}
	return nil
}

func (m *memRepo) ClearAll(_ context.Context) error {
	m.data = map[string]drawer.Inventory{}
	return nil
}

func (m *memRepo) ListCabinets(_ context.Context) []string {
	names := make([]string, 0, len(m.data))
	for c := range m.data {
		if c != "" {
			names = append(names, c)
		}
	}
	sort.Strings(names)
	return names
}

func newTestService() (drawer.Service, *memRepo) {
	repo := newMemRepo()
	return drawer.NewService(repo, history.NewJournal()), repo
}

// TestExportCSV 表头固定,行按键升序,补齐后的空抽屉也在内
func TestExportCSV(t *testing.T) {
	svc, repo := newTestService()
	require.NoError(t, repo.WriteDrawer(context.Background(), drawer.Key{Row: "B", Column: "3"}, "Bolts", 2, drawer.DefaultCabinet))

	data, err := NewExportUseCase(svc).CSV(context.Background(), drawer.DefaultCabinet)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 49) // 表头 + 48个规范键
	assert.Equal(t, []string{"ID", "Name", "Quantity"}, records[0])
	assert.Equal(t, []string{"A1", "", "0"}, records[1])

	// 键升序,B3带数据
	var b3 []string
	for _, rec := range records[1:] {
		if rec[0] == "B3" {
			b3 = rec
		}
	}
	assert.Equal(t, []string{"B3", "Bolts", "2"}, b3)
}

// TestExportTXT 行形如"编号: 名称 (数量)",与文本导入互逆
func TestExportTXT(t *testing.T) {
	svc, repo := newTestService()
	require.NoError(t, repo.WriteDrawer(context.Background(), drawer.Key{Row: "A", Column: "1"}, "Widget", 5, drawer.DefaultCabinet))

	data, err := NewExportUseCase(svc).TXT(context.Background(), drawer.DefaultCabinet)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 48)
	assert.Equal(t, "A1: Widget (5)", lines[0])
	assert.Equal(t, "A2:  (0)", lines[1])
}

// TestImportCSVWithHeader 按表头列名取值,坏行跳过
func TestImportCSVWithHeader(t *testing.T) {
	svc, repo := newTestService()
	uc := NewImportUseCase(svc, nil)

	input := "ID,Name,Quantity\na1,Widget,5\nB2,Bolts,notanumber\nc3,Nuts,0\n"
	result, err := uc.CSV(context.Background(), strings.NewReader(input), drawer.DefaultCabinet)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Skipped)

	inv := repo.data[drawer.DefaultCabinet]
	assert.Equal(t, drawer.Slot{Name: "Widget", Qty: 5}, inv["A1"])
	// 按零删除约定:数量0时名称被清空
	assert.Equal(t, drawer.Slot{Name: "", Qty: 0}, inv["C3"])
	_, ok := inv["B2"]
	assert.False(t, ok)
}

// TestImportCSVPositional 无表头时按位置导入,首行也是数据
func TestImportCSVPositional(t *testing.T) {
	svc, repo := newTestService()
	uc := NewImportUseCase(svc, nil)

	input := "a1,Widget,5\nb2,Bolts,3\n"
	result, err := uc.CSV(context.Background(), strings.NewReader(input), drawer.DefaultCabinet)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)

	inv := repo.data[drawer.DefaultCabinet]
	assert.Equal(t, drawer.Slot{Name: "Widget", Qty: 5}, inv["A1"])
	assert.Equal(t, drawer.Slot{Name: "Bolts", Qty: 3}, inv["B2"])
}

// TestImportJSON 编号映射导入,数量非整数的条目跳过
func TestImportJSON(t *testing.T) {
	svc, repo := newTestService()
	uc := NewImportUseCase(svc, nil)

	input := `{"a1": {"name": "Widget", "qty": 5}, "b2": {"name": "Bad", "qty": "x"}}`
	result, err := uc.JSON(context.Background(), strings.NewReader(input), drawer.DefaultCabinet)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, drawer.Slot{Name: "Widget", Qty: 5}, repo.data[drawer.DefaultCabinet]["A1"])

	// 顶层不是映射时整体失败
	_, err = uc.JSON(context.Background(), strings.NewReader(`[1,2,3]`), drawer.DefaultCabinet)
	assert.Error(t, err)
}

// TestImportTXT 三种行形态混合,空行和坏行跳过
func TestImportTXT(t *testing.T) {
	svc, repo := newTestService()
	uc := NewImportUseCase(svc, nil)

	input := strings.Join([]string{
		"a1: Widget (5)",
		"",
		"B2,Bolts,3",
		"Screws,4", // 新名称,分配到第一个空位A2
		"garbage line",
	}, "\n")
	result, err := uc.TXT(context.Background(), strings.NewReader(input), drawer.DefaultCabinet)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, 1, result.Skipped)

	inv := repo.data[drawer.DefaultCabinet]
	assert.Equal(t, drawer.Slot{Name: "Widget", Qty: 5}, inv["A1"])
	assert.Equal(t, drawer.Slot{Name: "Bolts", Qty: 3}, inv["B2"])
	assert.Equal(t, drawer.Slot{Name: "Screws", Qty: 4}, inv["A2"])
}

// TestXLSXRoundTrip 导出的工作簿能原样导入
func TestXLSXRoundTrip(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	require.NoError(t, repo.WriteDrawer(ctx, drawer.Key{Row: "D", Column: "4"}, "Washers", 7, drawer.DefaultCabinet))

	data, err := NewExportUseCase(svc).XLSX(ctx, drawer.DefaultCabinet)
	require.NoError(t, err)

	// 导入到另一个柜子
	svc2, repo2 := newTestService()
	result, err := NewImportUseCase(svc2, nil).XLSX(ctx, bytes.NewReader(data), "Workshop")
	require.NoError(t, err)
	assert.Equal(t, 48, result.Applied)
	assert.Equal(t, drawer.Slot{Name: "Washers", Qty: 7}, repo2.data["Workshop"]["D4"])

	// 缺表头的工作簿整体失败
	_, err = NewImportUseCase(svc2, nil).XLSX(ctx, bytes.NewReader([]byte("not a workbook")), "Workshop")
	assert.Error(t, err)
}

// TestBackupRunOnce 备份文件含全部柜子的补齐库存
func TestBackupRunOnce(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	require.NoError(t, repo.WriteDrawer(ctx, drawer.Key{Row: "A", Column: "1"}, "Widget", 5, drawer.DefaultCabinet))
	require.NoError(t, repo.WriteDrawer(ctx, drawer.Key{Row: "B", Column: "2"}, "Bolts", 3, "Workshop"))

	path := filepath.Join(t.TempDir(), "backup.csv")
	runner := NewBackupRunner(svc, path, time.Minute)
	require.NoError(t, runner.RunOnce(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// 表头 + 2个柜子各48个补齐键
	require.Len(t, records, 1+2*48)
	assert.Equal(t, []string{"Cabinet", "Drawer", "Name", "Quantity"}, records[0])
	assert.Equal(t, []string{"Default", "A1", "Widget", "5"}, records[1])
}
