package book

import (
	"context"
)

// Repository 图书仓储接口
// 由domain层定义,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(含已下架,调用方按需检查Active)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitleAuthor 根据书名+作者查找(用于重复检查)
	FindByTitleAuthor(ctx context.Context, title, author string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// List 分页查询上架图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询上架图书(SELECT FOR UPDATE)
	// 用于下单预占库存,防止并发超卖;图书不存在或已下架返回ErrBookNotFound
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 原子更新库存,delta为负表示扣减
	// 带库存充足性条件,条件不满足时不修改任何行
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string // 搜索书名/作者/出版社
	Genre    string // 按分类过滤
	Featured bool   // 只看推荐位
	SortBy   string // price_asc / price_desc / created_at_desc
}
