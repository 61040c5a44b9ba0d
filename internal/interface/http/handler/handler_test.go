package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/xiebiao/drawerbox/internal/application/inventory"
	apptransfer "github.com/xiebiao/drawerbox/internal/application/transfer"
	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	"github.com/xiebiao/drawerbox/internal/domain/history"
)

type memRepo struct {
	data map[string]drawer.Inventory
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
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// newTestRouter 组装不带Redis缓存的完整路由
func newTestRouter() (*gin.Engine, *memRepo) {
	gin.SetMode(gin.TestMode)

	repo := &memRepo{data: map[string]drawer.Inventory{}}
	svc := drawer.NewService(repo, history.NewJournal())

	inventoryHandler := NewInventoryHandler(
		appinventory.NewUpdateDrawerUseCase(svc, nil),
		appinventory.NewBulkUpdateUseCase(svc, nil),
		appinventory.NewClearInventoryUseCase(svc, nil),
		appinventory.NewUndoRedoUseCase(svc, nil),
	)
	apiHandler := NewAPIHandler(
		appinventory.NewGetInventoryUseCase(svc, nil),
		appinventory.NewGetDrawerUseCase(svc),
		appinventory.NewUpdateDrawerUseCase(svc, nil),
		appinventory.NewListCabinetsUseCase(svc),
		nil, // system-stats不在本测试覆盖范围
	)
	transferHandler := NewTransferHandler(
		apptransfer.NewExportUseCase(svc),
		apptransfer.NewImportUseCase(svc, nil),
	)

	r := gin.New()
	r.POST("/update", inventoryHandler.Update)
	r.POST("/undo", inventoryHandler.Undo)
	r.POST("/redo", inventoryHandler.Redo)
	r.GET("/api/inventory", apiHandler.Inventory)
	r.GET("/api/cabinets/:cabinet/drawers/:key", apiHandler.GetDrawer)
	r.PUT("/api/cabinets/:cabinet/drawers/:key", apiHandler.PutDrawer)
	r.DELETE("/api/cabinets/:cabinet/drawers/:key", apiHandler.DeleteDrawer)
	r.GET("/export/:format", transferHandler.Export)
	r.POST("/import/:format", transferHandler.Import)
	return r, repo
}

func doRequest(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestUpdateValidation 缺字段和负数量都被拒绝,库存不动
func TestUpdateValidation(t *testing.T) {
	r, repo := newTestRouter()

	// 缺qty
	w := doRequest(r, http.MethodPost, "/update", `{"id":"A1","name":"Widget"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 负数量
	w = doRequest(r, http.MethodPost, "/update", `{"id":"A1","name":"Widget","qty":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, repo.data[drawer.DefaultCabinet])
}

// TestUpdateAndUndo 更新成功后撤销恢复原状
func TestUpdateAndUndo(t *testing.T) {
	r, repo := newTestRouter()

	w := doRequest(r, http.MethodPost, "/update", `{"id":"a1","name":"Widget","qty":5}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, drawer.Slot{Name: "Widget", Qty: 5}, repo.data[drawer.DefaultCabinet]["A1"])

	w = doRequest(r, http.MethodPost, "/undo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.True(t, repo.data[drawer.DefaultCabinet]["A1"].IsEmpty())

	// 历史已空
	w = doRequest(r, http.MethodPost, "/undo", "", nil)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

// TestInventoryETag If-None-Match命中返回304,变更后ETag更新
func TestInventoryETag(t *testing.T) {
	r, _ := newTestRouter()

	w := doRequest(r, http.MethodGet, "/api/inventory", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))

	var inv map[string]drawer.Slot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Len(t, inv, 48)

	// 命中
	w = doRequest(r, http.MethodGet, "/api/inventory", "", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// 写入后原ETag失效
	doRequest(r, http.MethodPost, "/update", `{"id":"B2","name":"Bolts","qty":3}`, nil)
	w = doRequest(r, http.MethodGet, "/api/inventory", "", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etag, w.Header().Get("ETag"))
}

// TestDrawerREST PUT写入、GET读取、DELETE清空,柜子路径段生效
func TestDrawerREST(t *testing.T) {
	r, repo := newTestRouter()

	w := doRequest(r, http.MethodPut, "/api/cabinets/Workshop/drawers/C3", `{"name":"Nuts","qty":9}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, drawer.Slot{Name: "Nuts", Qty: 9}, repo.data["Workshop"]["C3"])
	assert.Empty(t, repo.data[drawer.DefaultCabinet])

	w = doRequest(r, http.MethodGet, "/api/cabinets/Workshop/drawers/c3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Nuts"`)

	w = doRequest(r, http.MethodDelete, "/api/cabinets/Workshop/drawers/C3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.data["Workshop"]["C3"].IsEmpty())
}

// TestExportHeaders 下载接口带附件头,非法格式被拒绝
func TestExportHeaders(t *testing.T) {
	r, _ := newTestRouter()

	w := doRequest(r, http.MethodGet, "/export/csv", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="inventory.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "ID,Name,Quantity"))

	w = doRequest(r, http.MethodGet, "/export/pdf", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestImportRejectsWrongExtension 扩展名与格式不符直接拒绝
func TestImportRejectsWrongExtension(t *testing.T) {
	r, _ := newTestRouter()

	var body strings.Builder
	body.WriteString("--boundary\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"data.txt\"\r\n\r\n")
	body.WriteString("A1,Widget,5\r\n")
	body.WriteString("--boundary--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/import/csv", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
