package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// inventoryKeyPrefix 每个柜子一个hash,字段为payload和etag
	inventoryKeyPrefix = "drawerbox:inventory:"

	// cacheTTL 与HTTP响应的Cache-Control max-age保持一致
	cacheTTL = 5 * time.Minute
)

// InventoryCache 库存JSON响应缓存(Redis实现)
// 设计说明:
// 1. 缓存补齐后的库存JSON及其ETag,命中时省去数据库读取和序列化
// 2. 缓存失败一律降级:读失败视为未命中,写失败只记日志,不影响主流程
// 3. 写入路径在变更后按柜子失效
type InventoryCache struct {
	client *redis.Client
}

// NewInventoryCache 创建库存缓存
func NewInventoryCache(client *redis.Client) *InventoryCache {
	return &InventoryCache{client: client}
}

// Get 读取柜子的缓存响应,未命中或出错时ok为false
func (c *InventoryCache) Get(ctx context.Context, cabinet string) (payload []byte, etag string, ok bool) {
	fields, err := c.client.HGetAll(ctx, inventoryKeyPrefix+cabinet).Result()
	if err != nil {
		log.Printf("[redis] 读取库存缓存失败(柜子%q): %v", cabinet, err)
		return nil, "", false
	}
	body, hasBody := fields["payload"]
	tag, hasTag := fields["etag"]
	if !hasBody || !hasTag {
		return nil, "", false
	}
	return []byte(body), tag, true
}

// Set 写入柜子的缓存响应
func (c *InventoryCache) Set(ctx context.Context, cabinet string, payload []byte, etag string) {
	key := inventoryKeyPrefix + cabinet
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, "payload", payload, "etag", etag)
	pipe.Expire(ctx, key, cacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[redis] 写入库存缓存失败(柜子%q): %v", cabinet, err)
	}
}

// Invalidate 使指定柜子的缓存失效
func (c *InventoryCache) Invalidate(ctx context.Context, cabinet string) {
	if err := c.client.Del(ctx, inventoryKeyPrefix+cabinet).Err(); err != nil {
		log.Printf("[redis] 失效库存缓存失败(柜子%q): %v", cabinet, err)
	}
}

// InvalidateAll 使所有柜子的缓存失效(清空库存时使用)
// SCAN遍历避免KEYS阻塞Redis
func (c *InventoryCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, inventoryKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[redis] 删除缓存键%q失败: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[redis] 遍历库存缓存键失败: %v", err)
	}
}
