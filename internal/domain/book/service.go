package book

import (
	"context"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// Service 图书领域服务接口
// 封装跨实体的业务规则校验;权限(ManageCatalog)由接口层校验
type Service interface {
	// PublishBook 上架新书
	// 业务规则:价格在1-9999999分之间,库存>=0,同名同作者不能重复
	PublishBook(ctx context.Context, book *Book) (*Book, error)

	// GetBookByID 获取图书详情,已下架图书对外视为不存在
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBookInfo 更新图书基本信息
	UpdateBookInfo(ctx context.Context, id uint, title, author, description, publisher string,
		genres []string, publicationYear int, language, coverURL string) (*Book, error)

	// UpdateBookPrice 更新图书价格
	UpdateBookPrice(ctx context.Context, id uint, newPrice int64) (*Book, error)

	// UpdateBookStock 覆盖图书库存(补货)
	UpdateBookStock(ctx context.Context, id uint, newStock int) (*Book, error)

	// DeactivateBook 下架图书(软删除,历史订单快照不受影响)
	DeactivateBook(ctx context.Context, id uint) error

	// ListBooks 分页查询上架图书,公开接口
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PublishBook 上架新书
func (s *service) PublishBook(ctx context.Context, book *Book) (*Book, error) {
	if book.Price < 1 || book.Price > 9999999 {
		return nil, ErrInvalidPrice
	}
	if book.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 重复检查:同名同作者视为同一本书
	existing, err := s.repo.FindByTitleAuthor(ctx, book.Title, book.Author)
	if err == nil && existing != nil {
		return nil, ErrBookDuplicate
	}
	if err != nil && !apperrors.Is(err, apperrors.ErrCodeBookNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBookByID 获取图书详情
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, ErrInvalidBookID
	}
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.Active {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// UpdateBookInfo 更新图书基本信息
func (s *service) UpdateBookInfo(ctx context.Context, id uint, title, author, description, publisher string,
	genres []string, publicationYear int, language, coverURL string) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.UpdateInfo(title, author, description, publisher, genres, publicationYear, language, coverURL)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBookPrice 更新图书价格
// 改价只影响后续订单,历史订单按下单时的快照价结算
func (s *service) UpdateBookPrice(ctx context.Context, id uint, newPrice int64) (*Book, error) {
	if newPrice < 1 || newPrice > 9999999 {
		return nil, ErrInvalidPrice
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.UpdatePrice(newPrice); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBookStock 覆盖图书库存
func (s *service) UpdateBookStock(ctx context.Context, id uint, newStock int) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.UpdateStock(newStock); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeactivateBook 下架图书
func (s *service) DeactivateBook(ctx context.Context, id uint) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	book.Deactivate()
	return s.repo.Update(ctx, book)
}

// ListBooks 分页查询上架图书
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 10
	}
	return s.repo.List(ctx, params)
}
