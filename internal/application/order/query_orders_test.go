package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/internal/domain/user"
	"github.com/liuwen/bookmall/internal/mocks"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func TestGetOrderByID(t *testing.T) {
	ctx := context.Background()

	t.Run("本人可查看", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewQueryOrderUseCase(orderRepo)

		o := pendingOrder(1) // UserID=1
		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(o, nil)

		detail, err := uc.GetByID(ctx, Caller{UserID: 1, Role: user.RoleUser}, 1)
		require.NoError(t, err)

		assert.Equal(t, uint(1), detail.OrderID)
		assert.Equal(t, "ORD20260829000001", detail.OrderNo)
		assert.Equal(t, int64(6200), detail.TotalAmount) // 5900 + 100 + 200
		assert.Equal(t, "62.00", detail.TotalYuan)
		assert.Equal(t, "北京", detail.ShippingAddress.City)
		assert.Nil(t, detail.PaymentResult, "未支付订单没有支付回执")
	})

	t.Run("他人订单禁止访问", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewQueryOrderUseCase(orderRepo)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(pendingOrder(1), nil)

		_, err := uc.GetByID(ctx, Caller{UserID: 2, Role: user.RoleUser}, 1)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeForbidden))
	})

	t.Run("管理员可查看任意订单", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewQueryOrderUseCase(orderRepo)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(pendingOrder(1), nil)

		detail, err := uc.GetByID(ctx, Caller{UserID: 999, Role: user.RoleAdmin}, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), detail.UserID)
	})

	t.Run("已支付订单携带支付回执", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewQueryOrderUseCase(orderRepo)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(paidOrder(1), nil)

		detail, err := uc.GetByID(ctx, Caller{UserID: 1, Role: user.RoleUser}, 1)
		require.NoError(t, err)

		require.NotNil(t, detail.PaymentResult)
		assert.Equal(t, "txn-1", detail.PaymentResult.TransactionID)
		require.NotNil(t, detail.PaidAt)
	})

	t.Run("订单不存在", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewQueryOrderUseCase(orderRepo)

		orderRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, order.ErrOrderNotFound)

		_, err := uc.GetByID(ctx, Caller{UserID: 1, Role: user.RoleUser}, 404)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeOrderNotFound))
	})
}

func TestListMyOrders(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(mocks.MockOrderRepository)
	uc := NewQueryOrderUseCase(orderRepo)

	// 非法分页参数归一化为 page=1, pageSize=10
	orderRepo.On("ListByUserID", mock.Anything, uint(1), 1, 10).
		Return([]*order.Order{pendingOrder(1), pendingOrder(2)}, int64(2), nil)

	details, total, err := uc.ListMy(ctx, 1, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, details, 2)
	assert.Equal(t, uint(1), details[0].OrderID)
	orderRepo.AssertExpectations(t)
}

func TestListAllOrders(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(mocks.MockOrderRepository)
	uc := NewQueryOrderUseCase(orderRepo)

	filter := order.ListFilter{Status: order.StatusPending}
	orderRepo.On("List", mock.Anything, filter, 2, 20).
		Return([]*order.Order{pendingOrder(3)}, int64(41), nil)

	details, total, err := uc.ListAll(ctx, filter, 2, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(41), total)
	require.Len(t, details, 1)
	assert.Equal(t, uint(3), details[0].OrderID)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, pageSize int
		wantPage       int
		wantSize       int
	}{
		{0, 0, 1, 10},
		{-1, -5, 1, 10},
		{1, 101, 1, 10},
		{3, 50, 3, 50},
	}
	for _, tt := range tests {
		page, size := normalizePage(tt.page, tt.pageSize)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}
