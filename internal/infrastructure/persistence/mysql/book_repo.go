package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/liuwen/bookmall/internal/domain/book"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 实现domain/book/repository.go的接口,负责实体与GORM模型转换,
// 并把数据库错误(唯一索引冲突等)转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书(含已下架)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByTitleAuthor 根据书名+作者查找
func (r *bookRepository) FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询上架图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{}).Where("active = ?", true)

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR publisher LIKE ?", keyword, keyword, keyword)
	}
	if params.Genre != "" {
		// 逗号分隔存储,LIKE匹配单个标签
		query = query.Where("genres LIKE ?", "%"+params.Genre+"%")
	}
	if params.Featured {
		query = query.Where("featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// LockByID 悲观锁查询上架图书
// SELECT * FROM books WHERE id = ? AND active = 1 FOR UPDATE
// 在行上加排他锁,其他事务必须等COMMIT/ROLLBACK后才能访问,防止并发超卖;
// 已下架图书视同不存在,下单路径不会命中
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := dbFromContext(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("active = ?", true).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateStock 原子更新库存
// UPDATE books SET stock = stock + ? WHERE id = ? AND active = 1 AND stock + ? >= 0
// 只更新stock一列,条件防止库存为负
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ? AND active = ?", id, true).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 区分图书不存在与库存不足
		var model BookModel
		if err := db.Where("active = ?", true).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return book.NewErrInsufficientStock(model.Title, model.Stock, -delta)
	}

	return nil
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Publisher:       b.Publisher,
		Genres:          joinGenres(b.Genres),
		PublicationYear: b.PublicationYear,
		Language:        b.Language,
		Price:           b.Price,
		Stock:           b.Stock,
		CoverURL:        b.CoverURL,
		AverageRating:   b.AverageRating,
		RatingCount:     b.RatingCount,
		Featured:        b.Featured,
		Active:          b.Active,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		Description:     model.Description,
		Publisher:       model.Publisher,
		Genres:          splitGenres(model.Genres),
		PublicationYear: model.PublicationYear,
		Language:        model.Language,
		Price:           model.Price,
		Stock:           model.Stock,
		CoverURL:        model.CoverURL,
		AverageRating:   model.AverageRating,
		RatingCount:     model.RatingCount,
		Featured:        model.Featured,
		Active:          model.Active,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
