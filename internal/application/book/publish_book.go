package book

import (
	"context"

	"github.com/liuwen/bookmall/internal/domain/book"
)

// PublishBookUseCase 图书上架用例
// 应用层负责用例编排,业务规则校验在领域服务中;
// 权限(ManageCatalog)由接口层校验
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
	}
}

// PublishBookRequest 上架请求DTO
type PublishBookRequest struct {
	Title           string
	Author          string
	Description     string
	Publisher       string
	Genres          []string
	PublicationYear int
	Language        string
	Price           int64 // 分
	Stock           int
	CoverURL        string
}

// Execute 执行上架
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*BookView, error) {
	b := book.NewBook(req.Title, req.Author, req.Description, req.Publisher,
		req.Genres, req.PublicationYear, req.Language, req.Price, req.Stock, req.CoverURL)

	created, err := uc.bookService.PublishBook(ctx, b)
	if err != nil {
		return nil, err
	}

	return toBookView(created), nil
}
