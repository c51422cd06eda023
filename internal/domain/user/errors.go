package user

import (
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.ErrEmailDuplicate
)
