package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appbook "github.com/liuwen/bookmall/internal/application/book"
	"github.com/liuwen/bookmall/internal/domain/book"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// bookCacheTTL 详情缓存有效期
// 商家改价/改库存会主动失效,TTL只是兜底
const bookCacheTTL = 10 * time.Minute

// BookCache 图书详情缓存(Cache-Aside的Redis侧)
// 整本书JSON序列化存储,miss返回(nil, nil)由调用方回源
type BookCache struct {
	client *redis.Client
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client) appbook.Cache {
	return &BookCache{client: client}
}

func bookCacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 读取缓存,miss返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, bookCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 反序列化失败视为脏数据,删掉让下次回源重建
		c.client.Del(ctx, bookCacheKey(id))
		return nil, nil
	}

	return &b, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书失败")
	}

	if err := c.client.Set(ctx, bookCacheKey(b.ID), data, bookCacheTTL).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}

	return nil
}

// Delete 主动失效缓存(改价、改库存、下架后调用)
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookCacheKey(id)).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}
