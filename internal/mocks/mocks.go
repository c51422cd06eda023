// Package mocks 测试用Mock实现(testify/mock)
//
// 手写Mock:接口不多,mockery生成反而引入一层工具链。
// MockTransactor直接执行回调,单测里事务等价于顺序执行。
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/liuwen/bookmall/internal/domain/book"
	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/internal/domain/user"
)

// MockBookRepository 图书仓储Mock
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookRepository) FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	args := m.Called(ctx, title, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockOrderRepository 订单仓储Mock
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaid(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) List(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

// MockUserRepository 用户仓储Mock
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockTransactor 事务Mock:直接执行回调
type MockTransactor struct{}

func (m *MockTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockEventPublisher 事件发布Mock,记录所有发布的事件
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

// MockBookCache 图书缓存Mock
type MockBookCache struct {
	mock.Mock
}

func (m *MockBookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookCache) Set(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookCache) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
