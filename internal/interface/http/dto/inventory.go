package dto

// UpdateDrawerRequest HTTP抽屉更新请求
// validator tag说明:
// - required: 必填字段
// - Qty用指针:数量0是合法的清空请求,值类型会被required误判为缺失
type UpdateDrawerRequest struct {
	ID      string `json:"id" binding:"required" example:"A1"`
	Name    string `json:"name" example:"M3螺丝"`
	Qty     *int   `json:"qty" binding:"required" example:"5"`
	Cabinet string `json:"cabinet" example:"Default"`
}

// WriteDrawerRequest HTTP抽屉写入请求(REST接口,编号来自路径)
type WriteDrawerRequest struct {
	Name string `json:"name" example:"M3螺丝"`
	Qty  *int   `json:"qty" binding:"required" example:"5"`
}

// DrawerResponse HTTP单抽屉响应
type DrawerResponse struct {
	ID      string `json:"id" example:"A1"`
	Name    string `json:"name" example:"M3螺丝"`
	Qty     int    `json:"qty" example:"5"`
	Cabinet string `json:"cabinet" example:"Default"`
}

// BulkUpdateResponse HTTP批量更新响应
type BulkUpdateResponse struct {
	Applied int `json:"applied" example:"3"`
	Skipped int `json:"skipped" example:"1"`
}

// ImportResponse HTTP导入响应
type ImportResponse struct {
	Applied int `json:"applied" example:"48"`
	Skipped int `json:"skipped" example:"0"`
}
