package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/liuwen/bookmall/internal/application/user"
	"github.com/liuwen/bookmall/internal/interface/http/dto"
	"github.com/liuwen/bookmall/internal/interface/http/middleware"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
	"github.com/liuwen/bookmall/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明:
// 1. Handler只做HTTP的事:解析请求、调用应用层、返回响应
// 2. 业务逻辑在domain和application层,这里一行都不写
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	profileUseCase  *appuser.ProfileUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	profileUseCase *appuser.ProfileUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		profileUseCase:  profileUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建新用户账号,角色默认为user
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.UserResponse{
		ID:       result.ID,
		Email:    result.Email,
		Nickname: result.Nickname,
		Role:     result.Role,
	}, "注册成功")
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码,返回JWT Token对
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数错误: "+err.Error()))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "登录成功")
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并把当前Token拉入黑名单
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "登出成功")
}

// Profile 查询当前登录用户资料
// @Summary      用户资料
// @Description  返回当前登录用户的基本信息
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserInfo} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.profileUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result, "查询成功")
}
