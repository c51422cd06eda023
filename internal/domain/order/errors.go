package order

import (
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "订单状态不允许此操作")

	// ErrOrderAlreadyPaid 订单已支付,不能重复支付
	ErrOrderAlreadyPaid = apperrors.New(apperrors.ErrCodeAlreadyPaid, "订单已支付")

	// ErrOrderAlreadyDelivered 订单已送达,不能重复标记
	ErrOrderAlreadyDelivered = apperrors.New(apperrors.ErrCodeAlreadyDelivered, "订单已送达")

	// ErrInvalidOrderItems 订单明细不能为空
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidPaymentMethod 支付方式不在允许的枚举内
	ErrInvalidPaymentMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的支付方式")

	// ErrIncompleteAddress 收货地址五个字段必须填全
	ErrIncompleteAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不完整")

	// ErrInvalidAmount 金额字段不能为负数
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "金额不能为负数")
)
