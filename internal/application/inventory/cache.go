package inventory

import "context"

// Cache 库存JSON响应缓存接口
// 设计说明:
// 1. 由application层定义接口,infrastructure层的Redis实现可选注入
// 2. 所有实现必须自行降级:读失败视为未命中,写失败不上抛
// 3. 注入nil表示不启用缓存,用例内部做nil保护
type Cache interface {
	// Get 读取柜子的缓存响应,未命中时ok为false
	Get(ctx context.Context, cabinet string) (payload []byte, etag string, ok bool)

	// Set 写入柜子的缓存响应
	Set(ctx context.Context, cabinet string, payload []byte, etag string)

	// Invalidate 使指定柜子的缓存失效
	Invalidate(ctx context.Context, cabinet string)

	// InvalidateAll 使所有柜子的缓存失效
	InvalidateAll(ctx context.Context)
}

// invalidate nil安全的单柜子缓存失效
func invalidate(ctx context.Context, cache Cache, cabinet string) {
	if cache != nil {
		cache.Invalidate(ctx, cabinet)
	}
}

// invalidateAll nil安全的全量缓存失效
func invalidateAll(ctx context.Context, cache Cache) {
	if cache != nil {
		cache.InvalidateAll(ctx)
	}
}
