package order

import (
	"time"
)

// Status 订单状态
// 设计说明:
// 1. 使用string类型直接入库,便于人工排查与跨系统对接
// 2. 状态流转由Transition统一控制,实体方法只是事件的封装
type Status string

const (
	StatusPending    Status = "pending"    // 待支付
	StatusProcessing Status = "processing" // 已支付,处理中
	StatusShipped    Status = "shipped"    // 已发货
	StatusDelivered  Status = "delivered"  // 已送达
	StatusCancelled  Status = "cancelled"  // 已取消
	StatusRefunded   Status = "refunded"   // 已退款
)

// Event 状态机事件
type Event string

const (
	EventPay     Event = "pay"
	EventShip    Event = "ship"
	EventDeliver Event = "deliver"
	EventCancel  Event = "cancel"
	EventRefund  Event = "refund"
)

// transitions 状态机转移表: (当前状态, 事件) -> 目标状态
// 关键约束:未支付(pending)的订单不能发货/送达/退款,只能支付或取消
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventPay:    StatusProcessing,
		EventCancel: StatusCancelled,
	},
	StatusProcessing: {
		EventShip:    StatusShipped,
		EventDeliver: StatusDelivered,
		EventCancel:  StatusCancelled,
		EventRefund:  StatusRefunded,
	},
	StatusShipped: {
		EventDeliver: StatusDelivered,
		EventRefund:  StatusRefunded,
	},
	StatusDelivered: {
		EventRefund: StatusRefunded,
	},
	// cancelled / refunded 为终态
}

// Transition 计算状态转移,非法转移返回ErrInvalidStatusTransition
func Transition(current Status, event Event) (Status, error) {
	events, ok := transitions[current]
	if !ok {
		return current, ErrInvalidStatusTransition
	}
	next, ok := events[event]
	if !ok {
		return current, ErrInvalidStatusTransition
	}
	return next, nil
}

// PaymentMethod 支付方式(固定枚举)
type PaymentMethod string

const (
	PaymentRazorpay       PaymentMethod = "Razorpay"
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentDebitCard      PaymentMethod = "Debit Card"
	PaymentNetBanking     PaymentMethod = "Net Banking"
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
)

// IsValidPaymentMethod 校验支付方式是否在枚举内
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentRazorpay, PaymentCreditCard, PaymentDebitCard,
		PaymentNetBanking, PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}

// ShippingAddress 收货地址(值对象,随订单快照存储)
type ShippingAddress struct {
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
}

// IsComplete 五个字段必须全部填写
func (a ShippingAddress) IsComplete() bool {
	return a.Address != "" && a.City != "" && a.State != "" &&
		a.Country != "" && a.PostalCode != ""
}

// PaymentResult 支付网关回执(值对象)
type PaymentResult struct {
	TransactionID string
	Status        string
	UpdateTime    string
	EmailAddress  string
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体,必须经Order访问
// 2. 金额全部以分为单位存储(int64),避免浮点误差
// 3. ItemsPrice/TaxAmount/ShippingAmount/TotalAmount冗余存储,
//    下单时由服务端计算,客户端传入的总价仅作参考,不落库
type Order struct {
	ID              uint
	OrderNo         string // 业务订单号,全局唯一
	UserID          uint
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentResult   *PaymentResult // 支付后才有值
	ItemsPrice      int64          // 明细小计(分)
	TaxAmount       int64          // 税费(分)
	ShippingAmount  int64          // 运费(分)
	TotalAmount     int64          // 总金额(分) = ItemsPrice + Tax + Shipping
	Status          Status
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// Title/Author/CoverURL/Price是下单时刻的图书快照,
// 商家后续改价、下架都不影响历史订单
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Title    string
	Author   string
	CoverURL string
	Price    int64 // 下单时单价(分)
	Quantity int
}

// Subtotal 明细小计
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewOrder 创建新订单(工厂方法)
// 总金额在此处统一计算,初始状态为pending
func NewOrder(orderNo string, userID uint, items []OrderItem,
	addr ShippingAddress, method PaymentMethod, taxAmount, shippingAmount int64) *Order {
	now := time.Now()
	o := &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		TaxAmount:       taxAmount,
		ShippingAmount:  shippingAmount,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.ItemsPrice = o.CalculateItemsPrice()
	o.TotalAmount = o.ItemsPrice + taxAmount + shippingAmount
	return o
}

// CalculateItemsPrice 按快照单价实时计算明细小计
func (o *Order) CalculateItemsPrice() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// MarkPaid 标记支付成功(领域行为)
// 幂等保护:已支付订单返回ErrOrderAlreadyPaid
func (o *Order) MarkPaid(result PaymentResult) error {
	if o.IsPaid {
		return ErrOrderAlreadyPaid
	}
	next, err := Transition(o.Status, EventPay)
	if err != nil {
		return err
	}
	now := time.Now()
	o.Status = next
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.UpdatedAt = now
	return nil
}

// MarkDelivered 标记送达(领域行为)
// 状态机保证未支付订单无法送达
func (o *Order) MarkDelivered() error {
	if o.IsDelivered {
		return ErrOrderAlreadyDelivered
	}
	next, err := Transition(o.Status, EventDeliver)
	if err != nil {
		return err
	}
	now := time.Now()
	o.Status = next
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.UpdatedAt = now
	return nil
}

// Ship 发货(领域行为)
func (o *Order) Ship() error {
	return o.applyEvent(EventShip)
}

// Cancel 取消订单(领域行为)
func (o *Order) Cancel() error {
	return o.applyEvent(EventCancel)
}

// Refund 退款(领域行为)
func (o *Order) Refund() error {
	return o.applyEvent(EventRefund)
}

func (o *Order) applyEvent(event Event) error {
	next, err := Transition(o.Status, event)
	if err != nil {
		return err
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查订单归属,防止越权访问他人订单
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
