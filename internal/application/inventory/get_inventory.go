package inventory

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/xiebiao/drawerbox/internal/domain/drawer"
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
)

// GetInventoryUseCase 库存查询用例(带ETag协商缓存)
// 设计说明:
// 1. 返回补齐后的库存JSON及其MD5 ETag,客户端If-None-Match命中时免传输
// 2. encoding/json序列化map时键天然按升序输出,同样的库存必得同样的字节流,
//    ETag因此稳定
// 3. 可选的Redis缓存保存序列化结果,未启用时每次现算
type GetInventoryUseCase struct {
	drawerService drawer.Service
	cache         Cache
}

// NewGetInventoryUseCase 创建库存查询用例
func NewGetInventoryUseCase(drawerService drawer.Service, cache Cache) *GetInventoryUseCase {
	return &GetInventoryUseCase{
		drawerService: drawerService,
		cache:         cache,
	}
}

// GetInventoryRequest 查询请求DTO
type GetInventoryRequest struct {
	Cabinet     string // 柜子名,空时使用默认柜子
	IfNoneMatch string // 客户端携带的ETag,可为空
}

// GetInventoryResponse 查询响应DTO
type GetInventoryResponse struct {
	Payload     []byte // 补齐后的库存JSON
	ETag        string // 内容的MD5
	NotModified bool   // 客户端ETag仍然有效,Payload可忽略
}

// Execute 执行库存查询
func (uc *GetInventoryUseCase) Execute(ctx context.Context, req GetInventoryRequest) (*GetInventoryResponse, error) {
	cabinet := req.Cabinet
	if cabinet == "" {
		cabinet = drawer.DefaultCabinet
	}

	payload, etag, ok := uc.cachedPayload(ctx, cabinet)
	if !ok {
		inv := drawer.Pad(uc.drawerService.Inventory(ctx, cabinet))

		var err error
		payload, err = json.Marshal(inv)
		if err != nil {
			return nil, apperrors.Wrap(err, "序列化库存失败")
		}
		sum := md5.Sum(payload)
		etag = hex.EncodeToString(sum[:])

		if uc.cache != nil {
			uc.cache.Set(ctx, cabinet, payload, etag)
		}
	}

	if req.IfNoneMatch != "" && req.IfNoneMatch == etag {
		return &GetInventoryResponse{ETag: etag, NotModified: true}, nil
	}
	return &GetInventoryResponse{Payload: payload, ETag: etag}, nil
}

// cachedPayload 尝试从响应缓存读取
func (uc *GetInventoryUseCase) cachedPayload(ctx context.Context, cabinet string) ([]byte, string, bool) {
	if uc.cache == nil {
		return nil, "", false
	}
	return uc.cache.Get(ctx, cabinet)
}
