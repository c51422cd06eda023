package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. StatusCode与HTTP状态码一致，客户端无需解析两套码表
// 2. Success标记业务是否成功，失败时Data为null
// 3. Message是用户友好的提示信息
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := orderService.Create(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 未知错误统一返回500，不向客户端泄露内部细节
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志，响应里只保留用户可读的Message
	if appErr.Err != nil {
		log.Printf("request failed: %v", appErr)
	}

	status := appErr.HTTPStatus()
	c.JSON(status, Response{
		StatusCode: status,
		Data:       nil,
		Message:    appErr.Message,
		Success:    false,
	})
}

// ErrorWithStatus 自定义状态码和消息
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}

// BadRequest 参数错误响应（400）
func BadRequest(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusBadRequest, message)
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`        // 数据列表
	Total      int64       `json:"total"`       // 总记录数
	Page       int         `json:"page"`        // 当前页码
	PageSize   int         `json:"page_size"`   // 每页大小
	TotalPages int         `json:"total_pages"` // 总页数
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int, message string) {
	Success(c, NewPageData(list, total, page, pageSize), message)
}
