package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/liuwen/bookmall/internal/application/order"
	"github.com/liuwen/bookmall/internal/domain/order"
	"github.com/liuwen/bookmall/internal/domain/user"
	"github.com/liuwen/bookmall/internal/interface/http/dto"
	"github.com/liuwen/bookmall/internal/interface/http/middleware"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
	"github.com/liuwen/bookmall/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 下单/查询走登录用户;标记支付/送达、全量列表由
// RequirePermission(MutateOrderStatus / ReadAllOrders)保护
type OrderHandler struct {
	createUseCase *apporder.CreateOrderUseCase
	statusUseCase *apporder.OrderStatusUseCase
	queryUseCase  *apporder.QueryOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	statusUseCase *apporder.OrderStatusUseCase,
	queryUseCase *apporder.QueryOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase: createUseCase,
		statusUseCase: statusUseCase,
		queryUseCase:  queryUseCase,
	}
}

// parseOrderID 解析路径参数中的订单ID
func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidReference, "订单ID格式非法")
	}
	return uint(id), nil
}

// Create 创建订单
// @Summary      创建订单
// @Description  下单:锁定库存、按服务端价格生成快照、计算总价并扣减库存,任一环节失败整单回滚
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "下单信息"
// @Success      201 {object} response.Response{data=apporder.CreateOrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误/库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在或已下架"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: middleware.GetUserID(c),
		Items:  items,
		ShippingAddress: order.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			Country:    req.ShippingAddress.Country,
			PostalCode: req.ShippingAddress.PostalCode,
		},
		PaymentMethod:  order.PaymentMethod(req.PaymentMethod),
		TaxAmount:      req.TaxAmount,
		ShippingAmount: *req.ShippingAmount,
		ClientTotal:    *req.TotalAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result, "下单成功")
}

// Get 查询订单详情
// @Summary      订单详情
// @Description  查询单笔订单,只能看自己的订单,管理员可看全部
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDetail} "查询成功"
// @Failure      403 {object} response.Response "无权查看他人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	caller := apporder.Caller{
		UserID: middleware.GetUserID(c),
		Role:   user.Role(middleware.GetRole(c)),
	}

	result, err := h.queryUseCase.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "查询成功")
}

// ListMy 查询我的订单
// @Summary      我的订单
// @Description  分页查询当前用户的订单,按创建时间倒序
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(10)
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/orders/my [get]
func (h *OrderHandler) ListMy(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	list, total, err := h.queryUseCase.ListMy(c.Request.Context(),
		middleware.GetUserID(c), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := normalizePageParams(req.Page, req.PageSize)
	response.SuccessWithPage(c, list, total, page, pageSize, "查询成功")
}

// ListAll 管理端查询全部订单
// @Summary      全部订单(管理端)
// @Description  分页查询全部订单,支持按状态/用户过滤
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(10)
// @Param        status query string false "按状态过滤" Enums(pending, processing, shipped, delivered, cancelled, refunded)
// @Param        user_id query int false "按用户过滤"
// @Success      200 {object} response.Response{data=response.PageData} "查询成功"
// @Failure      403 {object} response.Response "无管理权限"
// @Router       /api/v1/orders/admin/all [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	filter := order.ListFilter{
		Status: order.Status(req.Status),
		UserID: req.UserID,
	}

	list, total, err := h.queryUseCase.ListAll(c.Request.Context(), filter, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := normalizePageParams(req.Page, req.PageSize)
	response.SuccessWithPage(c, list, total, page, pageSize, "查询成功")
}

// MarkPaid 标记订单支付成功
// @Summary      标记支付(管理端)
// @Description  记录支付网关回执并将订单流转为processing,重复标记返回400
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.MarkPaidRequest true "支付回执"
// @Success      200 {object} response.Response{data=apporder.OrderStatusResponse} "标记成功"
// @Failure      400 {object} response.Response "订单已支付/状态非法"
// @Failure      403 {object} response.Response "无管理权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/pay [put]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.statusUseCase.MarkPaid(c.Request.Context(), apporder.MarkPaidRequest{
		OrderID:       id,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		UpdateTime:    req.UpdateTime,
		EmailAddress:  req.EmailAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "标记支付成功")
}

// MarkDelivered 标记订单送达
// @Summary      标记送达(管理端)
// @Description  将订单流转为delivered,未支付的订单会被状态机拒绝
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderStatusResponse} "标记成功"
// @Failure      400 {object} response.Response "订单已送达/状态非法"
// @Failure      403 {object} response.Response "无管理权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/deliver [put]
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.statusUseCase.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "标记送达成功")
}

// normalizePageParams 与应用层分页默认值保持一致
func normalizePageParams(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
