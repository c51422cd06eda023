package book

import (
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在或已下架
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrBookDuplicate 同名同作者的图书已存在
	ErrBookDuplicate = apperrors.ErrBookDuplicate

	// ErrInvalidBookID 图书ID必须为正整数
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidReference, "图书ID不合法")

	// ErrInvalidPrice 价格必须大于0
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 库存不能为负数
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidRating 评分必须在0-5之间
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在0-5之间")
)

// NewErrInsufficientStock 库存不足错误
// 错误信息携带书名、剩余库存与请求数量,方便前端直接展示
func NewErrInsufficientStock(title string, available, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"《%s》库存不足: 剩余%d件, 需要%d件", title, available, requested)
}
