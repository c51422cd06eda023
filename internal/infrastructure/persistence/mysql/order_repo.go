package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/liuwen/bookmall/internal/domain/order"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// Order与OrderItem是聚合关系一起保存;查询用Preload避免N+1;
// 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(GORM通过foreignKey自动级联保存Items)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找订单(Preload明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Items").Where("order_no = ?", orderNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// Update 更新订单状态与支付/送达标记,不触碰Items快照
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	db := dbFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"status":       string(o.Status),
		"is_paid":      o.IsPaid,
		"paid_at":      o.PaidAt,
		"is_delivered": o.IsDelivered,
		"delivered_at": o.DeliveredAt,
		"updated_at":   o.UpdatedAt,
	}
	if o.PaymentResult != nil {
		updates["pay_transaction_id"] = o.PaymentResult.TransactionID
		updates["pay_status"] = o.PaymentResult.Status
		updates["pay_update_time"] = o.PaymentResult.UpdateTime
		updates["pay_email_address"] = o.PaymentResult.EmailAddress
	}

	result := db.Model(&OrderModel{}).Where("id = ?", o.ID).Updates(updates)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}

	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// UpdatePaid 条件更新支付标记
// WHERE带is_paid = false,两个并发的支付回调只有一个能改到行;
// 调用方已通过FindByID确认订单存在,0行受影响说明已被抢先支付
func (r *orderRepository) UpdatePaid(ctx context.Context, o *order.Order) error {
	db := dbFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"status":     string(o.Status),
		"is_paid":    o.IsPaid,
		"paid_at":    o.PaidAt,
		"updated_at": o.UpdatedAt,
	}
	if o.PaymentResult != nil {
		updates["pay_transaction_id"] = o.PaymentResult.TransactionID
		updates["pay_status"] = o.PaymentResult.Status
		updates["pay_update_time"] = o.PaymentResult.UpdateTime
		updates["pay_email_address"] = o.PaymentResult.EmailAddress
	}

	result := db.Model(&OrderModel{}).
		Where("id = ? AND is_paid = ?", o.ID, false).
		Updates(updates)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单支付状态失败")
	}

	if result.RowsAffected == 0 {
		return order.ErrOrderAlreadyPaid
	}

	return nil
}

// ListByUserID 查询用户的订单列表,按创建时间倒序
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&OrderModel{}).Where("user_id = ?", userID)
	return r.paginate(query, page, pageSize)
}

// List 管理端查询全部订单,支持状态/用户过滤
func (r *orderRepository) List(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*order.Order, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&OrderModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	return r.paginate(query, page, pageSize)
}

func (r *orderRepository) paginate(query *gorm.DB, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}

	return orders, total, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			CoverURL: item.CoverURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	model := &OrderModel{
		ID:             o.ID,
		OrderNo:        o.OrderNo,
		UserID:         o.UserID,
		ShipAddress:    o.ShippingAddress.Address,
		ShipCity:       o.ShippingAddress.City,
		ShipState:      o.ShippingAddress.State,
		ShipCountry:    o.ShippingAddress.Country,
		ShipPostalCode: o.ShippingAddress.PostalCode,
		PaymentMethod:  string(o.PaymentMethod),
		ItemsPrice:     o.ItemsPrice,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		IsPaid:         o.IsPaid,
		PaidAt:         o.PaidAt,
		IsDelivered:    o.IsDelivered,
		DeliveredAt:    o.DeliveredAt,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.PaymentResult != nil {
		model.PayTransactionID = o.PaymentResult.TransactionID
		model.PayStatus = o.PaymentResult.Status
		model.PayUpdateTime = o.PaymentResult.UpdateTime
		model.PayEmailAddress = o.PaymentResult.EmailAddress
	}
	return model
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			CoverURL: item.CoverURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	o := &order.Order{
		ID:      model.ID,
		OrderNo: model.OrderNo,
		UserID:  model.UserID,
		Items:   items,
		ShippingAddress: order.ShippingAddress{
			Address:    model.ShipAddress,
			City:       model.ShipCity,
			State:      model.ShipState,
			Country:    model.ShipCountry,
			PostalCode: model.ShipPostalCode,
		},
		PaymentMethod:  order.PaymentMethod(model.PaymentMethod),
		ItemsPrice:     model.ItemsPrice,
		TaxAmount:      model.TaxAmount,
		ShippingAmount: model.ShippingAmount,
		TotalAmount:    model.TotalAmount,
		Status:         order.Status(model.Status),
		IsPaid:         model.IsPaid,
		PaidAt:         model.PaidAt,
		IsDelivered:    model.IsDelivered,
		DeliveredAt:    model.DeliveredAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
	if model.PayTransactionID != "" || model.PayStatus != "" {
		o.PaymentResult = &order.PaymentResult{
			TransactionID: model.PayTransactionID,
			Status:        model.PayStatus,
			UpdateTime:    model.PayUpdateTime,
			EmailAddress:  model.PayEmailAddress,
		}
	}
	return o
}
