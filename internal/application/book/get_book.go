package book

import (
	"context"
	"log"

	"github.com/liuwen/bookmall/internal/domain/book"
)

// Cache 图书详情缓存接口
// 实现方:infrastructure/persistence/redis,缓存miss返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}

// GetBookUseCase 图书详情查询用例
// 缓存旁路(Cache-Aside):先查redis,miss再查库并回填;
// 缓存故障降级为直查数据库,绝不影响读请求
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache Cache) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 查询图书详情(公开接口)
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			log.Printf("图书缓存读取失败,降级查库: id=%d, err=%v", id, err)
		} else if cached != nil {
			return toBookView(cached), nil
		}
	}

	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, b); err != nil {
			log.Printf("图书缓存写入失败: id=%d, err=%v", id, err)
		}
	}

	return toBookView(b), nil
}
