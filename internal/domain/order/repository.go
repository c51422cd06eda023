package order

import (
	"context"
)

// ListFilter 管理端订单列表过滤条件
type ListFilter struct {
	Status Status // 空串表示不过滤
	UserID uint   // 0表示不过滤
}

// Repository 订单仓储接口
// 由domain层定义,infrastructure层实现;事务通过context传递
type Repository interface {
	// Create 创建订单(订单与明细在同一事务中落库)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// Update 更新订单(状态、支付/送达标记)
	Update(ctx context.Context, order *Order) error

	// UpdatePaid 条件更新支付标记(WHERE is_paid = false)
	// 并发重复支付时只有一个请求生效,落败方返回ErrOrderAlreadyPaid
	UpdatePaid(ctx context.Context, order *Order) error

	// ListByUserID 查询用户自己的订单,按创建时间倒序分页
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// List 管理端查询全部订单,支持状态/用户过滤
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*Order, int64, error)
}
