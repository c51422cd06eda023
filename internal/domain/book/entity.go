package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位,避免浮点数精度问题
// 2. Active为软删除标记:下架的图书对外不可见、不可下单,
//    但历史订单的快照不受影响,记录永不物理删除
// 3. 同名同作者视为重复,由仓储层唯一索引兜底
type Book struct {
	ID              uint
	Title           string
	Author          string
	Description     string
	Publisher       string   // 出版社
	Genres          []string // 分类标签
	PublicationYear int
	Language        string
	Price           int64 // 价格(分)
	Stock           int
	CoverURL        string
	AverageRating   float64 // 平均评分(0-5)
	RatingCount     int     // 评分人数
	Featured        bool    // 是否推荐位展示
	Active          bool    // 上架状态(软删除标记)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法),默认上架
func NewBook(title, author, description, publisher string, genres []string,
	publicationYear int, language string, price int64, stock int, coverURL string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		Description:     description,
		Publisher:       publisher,
		Genres:          genres,
		PublicationYear: publicationYear,
		Language:        language,
		Price:           price,
		Stock:           stock,
		CoverURL:        coverURL,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdatePrice 更新价格,价格必须大于0
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 覆盖库存,库存不能为负数
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(下单预占)
// 库存不足时返回携带书名/剩余/需求数量的错误
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return NewErrInsufficientStock(b.Title, b.Stock, quantity)
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(补货、订单取消回补)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息,空值字段保持不变
func (b *Book) UpdateInfo(title, author, description, publisher string,
	genres []string, publicationYear int, language, coverURL string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if description != "" {
		b.Description = description
	}
	if publisher != "" {
		b.Publisher = publisher
	}
	if len(genres) > 0 {
		b.Genres = genres
	}
	if publicationYear > 0 {
		b.PublicationYear = publicationYear
	}
	if language != "" {
		b.Language = language
	}
	if coverURL != "" {
		b.CoverURL = coverURL
	}
	b.UpdatedAt = time.Now()
}

// AddRating 追加一条评分,重算平均分
func (b *Book) AddRating(score float64) error {
	if score < 0 || score > 5 {
		return ErrInvalidRating
	}
	total := b.AverageRating*float64(b.RatingCount) + score
	b.RatingCount++
	b.AverageRating = total / float64(b.RatingCount)
	b.UpdatedAt = time.Now()
	return nil
}

// Deactivate 下架(软删除)
func (b *Book) Deactivate() {
	b.Active = false
	b.UpdatedAt = time.Now()
}

// Activate 重新上架
func (b *Book) Activate() {
	b.Active = true
	b.UpdatedAt = time.Now()
}

// SetFeatured 设置推荐位
func (b *Book) SetFeatured(featured bool) {
	b.Featured = featured
	b.UpdatedAt = time.Now()
}
