package dto

// CreateOrderRequest HTTP下单请求
// total_amount是客户端算的参考值,服务端始终按库中价格重算,
// 两者不一致以服务端为准(防改价攻击)
type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest   `json:"shipping_address" binding:"required"`
	PaymentMethod   string                   `json:"payment_method" binding:"required" example:"Cash on Delivery"`
	TaxAmount       int64                    `json:"tax_amount" binding:"min=0" example:"100"`
	ShippingAmount  *int64                   `json:"shipping_amount" binding:"required,min=0" example:"200"`
	TotalAmount     *int64                   `json:"total_amount" binding:"required,min=0" example:"3300"`
}

// CreateOrderItemRequest 订单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// ShippingAddressRequest 收货地址,五个字段全部必填
type ShippingAddressRequest struct {
	Address    string `json:"address" binding:"required,max=255" example:"中关村大街1号"`
	City       string `json:"city" binding:"required,max=100" example:"北京"`
	State      string `json:"state" binding:"required,max=100" example:"北京"`
	Country    string `json:"country" binding:"required,max=100" example:"中国"`
	PostalCode string `json:"postal_code" binding:"required,max=20" example:"100080"`
}

// MarkPaidRequest HTTP标记支付请求(支付网关回执)
type MarkPaidRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,max=100" example:"pay_29QQoUBi66xm2f"`
	Status        string `json:"status" binding:"max=30" example:"COMPLETED"`
	UpdateTime    string `json:"update_time" binding:"max=50" example:"2026-08-29T10:30:00Z"`
	EmailAddress  string `json:"email_address" binding:"omitempty,email,max=100" example:"payer@example.com"`
}

// ListOrdersRequest HTTP订单列表请求(query string)
type ListOrdersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"10"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled refunded"`
	UserID   uint   `form:"user_id"` // 仅管理端列表有效
}
