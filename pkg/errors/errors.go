package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前两位对应HTTP状态码（40010 → 400）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 返回错误对应的HTTP状态码
// 约定：业务错误码的前三位就是HTTP状态码（40010/100 = 400）
func (e *AppError) HTTPStatus() int {
	switch status := e.Code / 100; status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict:
		return status
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 请求/业务规则错误
// - 401xx: 认证错误
// - 403xx: 权限错误
// - 404xx: 资源不存在
// - 409xx: 唯一性冲突
// - 500xx: 服务端错误

const (
	// 参数与业务规则错误（40000-40099）
	ErrCodeInvalidParams     = 40000 // 参数错误(通用)
	ErrCodeBindError         = 40001 // 参数绑定失败
	ErrCodeInvalidReference  = 40002 // 标识符格式非法
	ErrCodeBusinessError     = 40009 // 业务错误(通用)
	ErrCodeInsufficientStock = 40010 // 库存不足
	ErrCodeAlreadyPaid       = 40011 // 订单已支付
	ErrCodeAlreadyDelivered  = 40012 // 订单已送达
	ErrCodeInvalidTransition = 40013 // 订单状态非法流转
	ErrCodeWeakPassword      = 40020 // 密码强度不足

	// 认证错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误

	// 权限错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权访问

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound  = 40401 // 用户不存在
	ErrCodeBookNotFound  = 40402 // 图书不存在
	ErrCodeOrderNotFound = 40403 // 订单不存在

	// 唯一性冲突（40900-40999）
	ErrCodeDuplicateEntry = 40900 // 重复记录(通用)
	ErrCodeEmailDuplicate = 40901 // 邮箱已存在
	ErrCodeBookDuplicate  = 40902 // 图书已存在

	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证与权限
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrUserNotFound  = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound  = New(ErrCodeBookNotFound, "图书不存在或已下架")
	ErrOrderNotFound = New(ErrCodeOrderNotFound, "订单不存在")

	// 唯一性冲突
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrBookDuplicate  = New(ErrCodeBookDuplicate, "同名同作者的图书已存在")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrWeakPassword  = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// Is 判断错误是否为指定业务码的AppError
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
