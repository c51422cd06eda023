package book

import (
	"context"
	"log"

	"github.com/liuwen/bookmall/internal/domain/book"
)

// ManageBookUseCase 图书管理用例(改信息/改价/补货/下架)
// 权限(ManageCatalog)由接口层校验;写操作后失效详情缓存
type ManageBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewManageBookUseCase 创建图书管理用例
func NewManageBookUseCase(bookService book.Service, cache Cache) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// UpdateBookRequest 更新图书请求DTO,零值字段不修改
type UpdateBookRequest struct {
	ID              uint
	Title           string
	Author          string
	Description     string
	Publisher       string
	Genres          []string
	PublicationYear int
	Language        string
	CoverURL        string
	Price           int64 // 0表示不改价
	Stock           *int  // nil表示不覆盖库存
}

// Update 更新图书信息/价格/库存
func (uc *ManageBookUseCase) Update(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.UpdateBookInfo(ctx, req.ID, req.Title, req.Author,
		req.Description, req.Publisher, req.Genres, req.PublicationYear, req.Language, req.CoverURL)
	if err != nil {
		return nil, err
	}

	if req.Price > 0 {
		b, err = uc.bookService.UpdateBookPrice(ctx, req.ID, req.Price)
		if err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		b, err = uc.bookService.UpdateBookStock(ctx, req.ID, *req.Stock)
		if err != nil {
			return nil, err
		}
	}

	uc.invalidate(ctx, req.ID)
	return toBookView(b), nil
}

// Deactivate 下架图书(软删除)
// 历史订单保存的是快照,不受下架影响
func (uc *ManageBookUseCase) Deactivate(ctx context.Context, id uint) error {
	if err := uc.bookService.DeactivateBook(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *ManageBookUseCase) invalidate(ctx context.Context, id uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		log.Printf("图书缓存失效失败: id=%d, err=%v", id, err)
	}
}
