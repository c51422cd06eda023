package user

import (
	"context"

	"github.com/liuwen/bookmall/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 应用层只做编排,校验与加密在领域服务中
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// RegisterResponse 注册响应,不含密码字段
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Role:     string(u.Role),
	}, nil
}
