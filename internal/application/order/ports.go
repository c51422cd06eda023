package order

import (
	"context"
)

// Transactor 事务执行器
// 由infrastructure层的TxManager实现,fn内通过context拿到同一事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布接口
// 实现方:infrastructure/event(RabbitMQ + 熔断器)
// 发布失败只记日志,绝不让下单请求失败
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// 订单事件routing key
const (
	EventOrderCreated   = "order.created"
	EventOrderPaid      = "order.paid"
	EventOrderDelivered = "order.delivered"
)

// OrderCreatedEvent 下单成功事件
type OrderCreatedEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	UserID      uint   `json:"user_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

// OrderPaidEvent 支付成功事件
type OrderPaidEvent struct {
	OrderID       uint   `json:"order_id"`
	OrderNo       string `json:"order_no"`
	UserID        uint   `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	PaidAt        string `json:"paid_at"`
}

// OrderDeliveredEvent 送达事件
type OrderDeliveredEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	UserID      uint   `json:"user_id"`
	DeliveredAt string `json:"delivered_at"`
}
