package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/internal/mocks"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func pendingOrder(id uint) *order.Order {
	o := order.NewOrder("ORD20260829000001", 1,
		[]order.OrderItem{{BookID: 10, Title: "Go语言实战", Price: 5900, Quantity: 1}},
		order.ShippingAddress{
			Address: "中关村大街1号", City: "北京", State: "北京",
			Country: "中国", PostalCode: "100080",
		},
		order.PaymentCashOnDelivery, 100, 200)
	o.ID = id
	return o
}

func paidOrder(id uint) *order.Order {
	o := pendingOrder(id)
	_ = o.MarkPaid(order.PaymentResult{TransactionID: "txn-1", Status: "COMPLETED"})
	return o
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("待支付订单标记成功", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockEventPublisher)
		uc := NewOrderStatusUseCase(orderRepo, publisher)

		o := pendingOrder(1)
		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(o, nil)
		orderRepo.On("UpdatePaid", mock.Anything, o).Return(nil)
		publisher.On("Publish", mock.Anything, EventOrderPaid, mock.Anything).Return(nil)

		resp, err := uc.MarkPaid(ctx, MarkPaidRequest{
			OrderID:       1,
			TransactionID: "txn-abc",
			Status:        "COMPLETED",
		})
		require.NoError(t, err)

		assert.Equal(t, string(order.StatusProcessing), resp.Status)
		assert.True(t, resp.IsPaid)
		require.NotNil(t, resp.PaidAt)
		orderRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("重复支付被拒绝", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewOrderStatusUseCase(orderRepo, new(mocks.MockEventPublisher))

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(paidOrder(1), nil)

		_, err := uc.MarkPaid(ctx, MarkPaidRequest{OrderID: 1, TransactionID: "txn-2"})
		assert.ErrorIs(t, err, order.ErrOrderAlreadyPaid)
		orderRepo.AssertNotCalled(t, "UpdatePaid", mock.Anything, mock.Anything)
	})

	t.Run("并发支付落败方收到已支付错误", func(t *testing.T) {
		// 两个回调同时读到未支付的订单,条件更新只让一个写入成功
		orderRepo := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockEventPublisher)
		uc := NewOrderStatusUseCase(orderRepo, publisher)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(pendingOrder(1), nil)
		orderRepo.On("UpdatePaid", mock.Anything, mock.Anything).
			Return(order.ErrOrderAlreadyPaid)

		_, err := uc.MarkPaid(ctx, MarkPaidRequest{OrderID: 1, TransactionID: "txn-late"})
		assert.ErrorIs(t, err, order.ErrOrderAlreadyPaid)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("取消的订单不能支付", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewOrderStatusUseCase(orderRepo, new(mocks.MockEventPublisher))

		o := pendingOrder(1)
		require.NoError(t, o.Cancel())
		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(o, nil)

		_, err := uc.MarkPaid(ctx, MarkPaidRequest{OrderID: 1, TransactionID: "txn-3"})
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})

	t.Run("订单不存在", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewOrderStatusUseCase(orderRepo, new(mocks.MockEventPublisher))

		orderRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, order.ErrOrderNotFound)

		_, err := uc.MarkPaid(ctx, MarkPaidRequest{OrderID: 404})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeOrderNotFound))
	})

	t.Run("落库失败向上传递", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockEventPublisher)
		uc := NewOrderStatusUseCase(orderRepo, publisher)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(pendingOrder(1), nil)
		orderRepo.On("UpdatePaid", mock.Anything, mock.Anything).
			Return(apperrors.New(apperrors.ErrCodeDatabaseError, "数据库错误"))

		_, err := uc.MarkPaid(ctx, MarkPaidRequest{OrderID: 1, TransactionID: "txn-4"})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabaseError))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMarkDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("已支付订单标记送达", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockEventPublisher)
		uc := NewOrderStatusUseCase(orderRepo, publisher)

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(paidOrder(1), nil)
		orderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, EventOrderDelivered, mock.Anything).Return(nil)

		resp, err := uc.MarkDelivered(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, string(order.StatusDelivered), resp.Status)
		assert.True(t, resp.IsDelivered)
		require.NotNil(t, resp.DeliveredAt)
	})

	t.Run("未支付订单不能送达", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewOrderStatusUseCase(orderRepo, new(mocks.MockEventPublisher))

		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(pendingOrder(1), nil)

		_, err := uc.MarkDelivered(ctx, 1)
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("重复送达被拒绝", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		uc := NewOrderStatusUseCase(orderRepo, new(mocks.MockEventPublisher))

		o := paidOrder(1)
		require.NoError(t, o.MarkDelivered())
		orderRepo.On("FindByID", mock.Anything, uint(1)).Return(o, nil)

		_, err := uc.MarkDelivered(ctx, 1)
		assert.ErrorIs(t, err, order.ErrOrderAlreadyDelivered)
	})
}
