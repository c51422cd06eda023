package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/liuwen/bookmall/internal/domain/book"
	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/pkg/metrics"
	"github.com/liuwen/bookmall/pkg/tracing"
)

// CreateOrderUseCase 创建订单用例
// 整个系统最核心的用例:事务、悲观锁防超卖、价格快照
type CreateOrderUseCase struct {
	orderRepo  order.Repository
	bookRepo   book.Repository
	transactor Transactor
	publisher  EventPublisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	transactor Transactor,
	publisher EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:  orderRepo,
		bookRepo:   bookRepo,
		transactor: transactor,
		publisher:  publisher,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	UserID          uint // 从JWT中提取
	Items           []CreateOrderItem
	ShippingAddress order.ShippingAddress
	PaymentMethod   order.PaymentMethod
	TaxAmount       int64 // 分
	ShippingAmount  int64 // 分
	// ClientTotal 客户端计算的总价,仅作参考:服务端始终重算,不落库
	ClientTotal int64
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// CreateOrderResponse 下单响应DTO
type CreateOrderResponse struct {
	OrderID        uint            `json:"order_id"`
	OrderNo        string          `json:"order_no"`
	Items          []OrderItemView `json:"items"`
	ItemsPrice     int64           `json:"items_price"`
	TaxAmount      int64           `json:"tax_amount"`
	ShippingAmount int64           `json:"shipping_amount"`
	TotalAmount    int64           `json:"total_amount"`
	TotalYuan      string          `json:"total_yuan"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	CreatedAt      string          `json:"created_at"`
}

// OrderItemView 明细视图(快照)
type OrderItemView struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"cover_url"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// Execute 执行下单
//
// 防超卖流程(悲观锁):
//  1. SELECT FOR UPDATE 锁定每本书的库存行
//  2. 锁内检查库存是否充足
//  3. 按锁定时的价格生成快照、创建订单
//  4. 条件扣减库存(stock - ? >= 0)
//  5. COMMIT释放锁;任何一步失败整个事务回滚,
//     订单不创建、已扣库存全部恢复
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	// 追踪未启用时拿到的是noop tracer,开销可忽略
	ctx, span := tracing.StartSpan(ctx, "bookmall-order", "CreateOrder")
	defer span.End()

	start := time.Now()
	metrics.OrdersInProgress.Inc()
	defer metrics.OrdersInProgress.Dec()

	if err := uc.validate(req); err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	var result *order.Order
	err := uc.transactor.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:逐项锁定并检查库存
		// LockByID执行 SELECT * FROM books WHERE id = ? AND active = 1 FOR UPDATE,
		// 图书不存在或已下架都返回ErrBookNotFound
		orderItems := make([]order.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}

			// 必须在锁内检查,锁外检查有并发窗口会超卖
			if b.Stock < item.Quantity {
				metrics.StockInsufficientTotal.Inc()
				return book.NewErrInsufficientStock(b.Title, b.Stock, item.Quantity)
			}

			// 价格快照:使用数据库中的当前价格,防止改价攻击;
			// 书名/作者/封面一并快照,商家改动不影响历史订单
			orderItems = append(orderItems, order.OrderItem{
				BookID:   b.ID,
				Title:    b.Title,
				Author:   b.Author,
				CoverURL: b.CoverURL,
				Price:    b.Price,
				Quantity: item.Quantity,
			})
		}

		// 步骤2:创建订单,总价由NewOrder按快照价重算
		orderNo := order.GenerateOrderNo()
		newOrder := order.NewOrder(orderNo, req.UserID, orderItems,
			req.ShippingAddress, req.PaymentMethod, req.TaxAmount, req.ShippingAmount)

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 步骤3:条件扣减库存
		// UPDATE books SET stock = stock - ? WHERE id = ? AND stock - ? >= 0
		// 行已被FOR UPDATE锁定,条件仅作最后一道防线
		for _, item := range req.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		result = newOrder
		return nil
	})

	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())

	// 事务提交后发布事件,失败只记日志
	uc.publishCreated(ctx, result)

	return buildCreateOrderResponse(result), nil
}

// validate 下单前置校验
// 校验顺序:明细非空 → 每项ID/数量合法 → 地址完整 → 支付方式 → 金额非负
func (uc *CreateOrderUseCase) validate(req CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.BookID == 0 {
			return book.ErrInvalidBookID
		}
		if item.Quantity <= 0 {
			return order.ErrInvalidQuantity
		}
	}
	if !req.ShippingAddress.IsComplete() {
		return order.ErrIncompleteAddress
	}
	if !order.IsValidPaymentMethod(req.PaymentMethod) {
		return order.ErrInvalidPaymentMethod
	}
	if req.TaxAmount < 0 || req.ShippingAmount < 0 || req.ClientTotal < 0 {
		return order.ErrInvalidAmount
	}
	return nil
}

func (uc *CreateOrderUseCase) publishCreated(ctx context.Context, o *order.Order) {
	event := OrderCreatedEvent{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.Publish(ctx, EventOrderCreated, event); err != nil {
		log.Printf("发布order.created事件失败: order_no=%s, err=%v", o.OrderNo, err)
	}
}

func buildCreateOrderResponse(o *order.Order) *CreateOrderResponse {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			CoverURL: item.CoverURL,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		}
	}
	return &CreateOrderResponse{
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		Items:          items,
		ItemsPrice:     o.ItemsPrice,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		TotalAmount:    o.TotalAmount,
		TotalYuan:      formatPrice(o.TotalAmount),
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
