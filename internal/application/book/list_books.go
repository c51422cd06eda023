package book

import (
	"context"

	"github.com/liuwen/bookmall/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 支持分页、关键词搜索、分类过滤与排序;公开接口
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int
	PageSize int
	Keyword  string // 搜索书名/作者/出版社
	Genre    string // 按分类过滤
	Featured bool   // 只看推荐位
	SortBy   string // price_asc / price_desc / created_at_desc
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    req.Genre,
		Featured: req.Featured,
		SortBy:   req.SortBy,
	}

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = toBookListItem(b)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
