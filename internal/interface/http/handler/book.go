package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/liuwen/bookmall/internal/application/book"
	"github.com/liuwen/bookmall/internal/interface/http/dto"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
	"github.com/liuwen/bookmall/pkg/response"
)

// BookHandler 图书HTTP处理器
// 读接口公开;写接口由路由上的RequirePermission(ManageCatalog)保护
type BookHandler struct {
	publishUseCase *appbook.PublishBookUseCase
	getUseCase     *appbook.GetBookUseCase
	listUseCase    *appbook.ListBooksUseCase
	manageUseCase  *appbook.ManageBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	manageUseCase *appbook.ManageBookUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase: publishUseCase,
		getUseCase:     getUseCase,
		listUseCase:    listUseCase,
		manageUseCase:  manageUseCase,
	}
}

// parseBookID 解析路径参数中的图书ID
func parseBookID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidReference, "图书ID格式非法")
	}
	return uint(id), nil
}

// Publish 上架图书
// @Summary      上架图书
// @Description  新增图书,(书名, 作者)组合唯一
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookView} "上架成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无管理权限"
// @Failure      409 {object} response.Response "图书已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Publish(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.publishUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		Publisher:       req.Publisher,
		Genres:          req.Genres,
		PublicationYear: req.PublicationYear,
		Language:        req.Language,
		Price:           req.Price,
		Stock:           req.Stock,
		CoverURL:        req.CoverURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result, "上架成功")
}

// Get 查询图书详情
// @Summary      图书详情
// @Description  查询单本图书,已下架图书返回404
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookView} "查询成功"
// @Failure      400 {object} response.Response "ID格式非法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "查询成功")
}

// List 查询图书列表
// @Summary      图书列表
// @Description  分页查询在售图书,支持关键词/分类/推荐位过滤与排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Param        keyword query string false "搜索书名/作者/出版社"
// @Param        genre query string false "按分类过滤"
// @Param        featured query bool false "只看推荐位"
// @Param        sort_by query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse} "查询成功"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    req.Genre,
		Featured: req.Featured,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "查询成功")
}

// Update 更新图书
// @Summary      更新图书
// @Description  修改图书信息/价格/库存,省略的字段不变
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=appbook.BookView} "更新成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无管理权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), appbook.UpdateBookRequest{
		ID:              id,
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		Publisher:       req.Publisher,
		Genres:          req.Genres,
		PublicationYear: req.PublicationYear,
		Language:        req.Language,
		CoverURL:        req.CoverURL,
		Price:           req.Price,
		Stock:           req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "更新成功")
}

// Deactivate 下架图书
// @Summary      下架图书
// @Description  软删除:图书下架后列表/详情不可见,历史订单快照不受影响
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      403 {object} response.Response "无管理权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Deactivate(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.manageUseCase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "下架成功")
}
