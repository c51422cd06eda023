package order

import (
	"context"
	"log"
	"time"

	"github.com/liuwen/bookmall/internal/domain/order"
)

// OrderStatusUseCase 订单状态变更用例(标记支付/送达)
// 权限(MutateOrderStatus)由接口层校验,这里只管业务规则
type OrderStatusUseCase struct {
	orderRepo order.Repository
	publisher EventPublisher
}

// NewOrderStatusUseCase 创建订单状态用例
func NewOrderStatusUseCase(orderRepo order.Repository, publisher EventPublisher) *OrderStatusUseCase {
	return &OrderStatusUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// MarkPaidRequest 标记支付请求(支付网关回执)
type MarkPaidRequest struct {
	OrderID       uint
	TransactionID string
	Status        string
	UpdateTime    string
	EmailAddress  string
}

// OrderStatusResponse 状态变更响应
type OrderStatusResponse struct {
	OrderID     uint    `json:"order_id"`
	OrderNo     string  `json:"order_no"`
	Status      string  `json:"status"`
	IsPaid      bool    `json:"is_paid"`
	PaidAt      *string `json:"paid_at"`
	IsDelivered bool    `json:"is_delivered"`
	DeliveredAt *string `json:"delivered_at"`
}

// MarkPaid 标记订单支付成功
// 幂等保护:已支付订单返回ErrOrderAlreadyPaid;
// 状态机将pending流转为processing,其余状态拒绝
func (uc *OrderStatusUseCase) MarkPaid(ctx context.Context, req MarkPaidRequest) (*OrderStatusResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	result := order.PaymentResult{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		UpdateTime:    req.UpdateTime,
		EmailAddress:  req.EmailAddress,
	}
	if err := o.MarkPaid(result); err != nil {
		return nil, err
	}

	// 条件更新兜底并发:两个支付回调同时通过上面的内存检查时,
	// 数据库层的is_paid = false条件保证只有一个写入成功
	if err := uc.orderRepo.UpdatePaid(ctx, o); err != nil {
		return nil, err
	}

	uc.publishPaid(ctx, o)

	return buildStatusResponse(o), nil
}

// MarkDelivered 标记订单送达
// 幂等保护:已送达订单返回ErrOrderAlreadyDelivered;
// 状态机保证未支付的订单无法标记送达
func (uc *OrderStatusUseCase) MarkDelivered(ctx context.Context, orderID uint) (*OrderStatusResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkDelivered(); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	uc.publishDelivered(ctx, o)

	return buildStatusResponse(o), nil
}

func (uc *OrderStatusUseCase) publishPaid(ctx context.Context, o *order.Order) {
	event := OrderPaidEvent{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		UserID:  o.UserID,
	}
	if o.PaymentResult != nil {
		event.TransactionID = o.PaymentResult.TransactionID
	}
	if o.PaidAt != nil {
		event.PaidAt = o.PaidAt.Format(time.RFC3339)
	}
	if err := uc.publisher.Publish(ctx, EventOrderPaid, event); err != nil {
		log.Printf("发布order.paid事件失败: order_no=%s, err=%v", o.OrderNo, err)
	}
}

func (uc *OrderStatusUseCase) publishDelivered(ctx context.Context, o *order.Order) {
	event := OrderDeliveredEvent{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		UserID:  o.UserID,
	}
	if o.DeliveredAt != nil {
		event.DeliveredAt = o.DeliveredAt.Format(time.RFC3339)
	}
	if err := uc.publisher.Publish(ctx, EventOrderDelivered, event); err != nil {
		log.Printf("发布order.delivered事件失败: order_no=%s, err=%v", o.OrderNo, err)
	}
}

func buildStatusResponse(o *order.Order) *OrderStatusResponse {
	resp := &OrderStatusResponse{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		Status:      string(o.Status),
		IsPaid:      o.IsPaid,
		IsDelivered: o.IsDelivered,
	}
	if o.PaidAt != nil {
		s := o.PaidAt.Format("2006-01-02 15:04:05")
		resp.PaidAt = &s
	}
	if o.DeliveredAt != nil {
		s := o.DeliveredAt.Format("2006-01-02 15:04:05")
		resp.DeliveredAt = &s
	}
	return resp
}
