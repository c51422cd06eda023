package order

import (
	"context"

	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/internal/domain/user"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// QueryOrderUseCase 订单查询用例
type QueryOrderUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrderUseCase 创建订单查询用例
func NewQueryOrderUseCase(orderRepo order.Repository) *QueryOrderUseCase {
	return &QueryOrderUseCase{orderRepo: orderRepo}
}

// Caller 当前调用者(从JWT解析)
type Caller struct {
	UserID uint
	Role   user.Role
}

// OrderDetail 订单详情视图
type OrderDetail struct {
	OrderID         uint                `json:"order_id"`
	OrderNo         string              `json:"order_no"`
	UserID          uint                `json:"user_id"`
	Items           []OrderItemView     `json:"items"`
	ShippingAddress ShippingAddressView `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentResult   *PaymentResultView  `json:"payment_result"`
	ItemsPrice      int64               `json:"items_price"`
	TaxAmount       int64               `json:"tax_amount"`
	ShippingAmount  int64               `json:"shipping_amount"`
	TotalAmount     int64               `json:"total_amount"`
	TotalYuan       string              `json:"total_yuan"`
	Status          string              `json:"status"`
	IsPaid          bool                `json:"is_paid"`
	PaidAt          *string             `json:"paid_at"`
	IsDelivered     bool                `json:"is_delivered"`
	DeliveredAt     *string             `json:"delivered_at"`
	CreatedAt       string              `json:"created_at"`
}

// ShippingAddressView 收货地址视图
type ShippingAddressView struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// PaymentResultView 支付回执视图
type PaymentResultView struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"update_time"`
	EmailAddress  string `json:"email_address"`
}

// GetByID 查询订单详情
// 访问控制:本人,或具备ReadAllOrders权限的调用者,否则Forbidden
func (uc *QueryOrderUseCase) GetByID(ctx context.Context, caller Caller, orderID uint) (*OrderDetail, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.IsOwnedBy(caller.UserID) && !caller.Role.Can(user.PermReadAllOrders) {
		return nil, apperrors.ErrForbidden
	}

	return buildOrderDetail(o), nil
}

// ListMy 查询自己的订单,按创建时间倒序分页
// 默认每页10条、第1页
func (uc *QueryOrderUseCase) ListMy(ctx context.Context, userID uint, page, pageSize int) ([]*OrderDetail, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return buildOrderDetails(orders), total, nil
}

// ListAll 管理端查询全部订单,支持status/userID过滤
// 权限(ReadAllOrders)由接口层校验
func (uc *QueryOrderUseCase) ListAll(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*OrderDetail, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return buildOrderDetails(orders), total, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func buildOrderDetails(orders []*order.Order) []*OrderDetail {
	details := make([]*OrderDetail, len(orders))
	for i, o := range orders {
		details[i] = buildOrderDetail(o)
	}
	return details
}

func buildOrderDetail(o *order.Order) *OrderDetail {
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

	detail := &OrderDetail{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		UserID:  o.UserID,
		Items:   items,
		ShippingAddress: ShippingAddressView{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			Country:    o.ShippingAddress.Country,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		PaymentMethod:  string(o.PaymentMethod),
		ItemsPrice:     o.ItemsPrice,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		TotalAmount:    o.TotalAmount,
		TotalYuan:      formatPrice(o.TotalAmount),
		Status:         string(o.Status),
		IsPaid:         o.IsPaid,
		IsDelivered:    o.IsDelivered,
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.PaymentResult != nil {
		detail.PaymentResult = &PaymentResultView{
			TransactionID: o.PaymentResult.TransactionID,
			Status:        o.PaymentResult.Status,
			UpdateTime:    o.PaymentResult.UpdateTime,
			EmailAddress:  o.PaymentResult.EmailAddress,
		}
	}
	if o.PaidAt != nil {
		s := o.PaidAt.Format("2006-01-02 15:04:05")
		detail.PaidAt = &s
	}
	if o.DeliveredAt != nil {
		s := o.DeliveredAt.Format("2006-01-02 15:04:05")
		detail.DeliveredAt = &s
	}
	return detail
}
