package user

import (
	"context"
	"log"
	"time"

	"github.com/liuwen/bookmall/internal/domain/user"
	"github.com/liuwen/bookmall/internal/infrastructure/persistence/redis"
	"github.com/liuwen/bookmall/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 1. 验证邮箱密码 2. 生成JWT Token对 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token有效期(秒)
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// Token携带角色,鉴权中间件无需查库
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
	}

	// 会话有效期与Refresh Token对齐;保存失败不影响登录
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour); err != nil {
		log.Printf("保存会话失败: user_id=%d, err=%v", u.ID, err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:       u.ID,
			Email:    u.Email,
			Nickname: u.Nickname,
			Role:     string(u.Role),
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出:删除会话,并把Access Token拉黑到其自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}

// ProfileUseCase 用户资料查询用例
type ProfileUseCase struct {
	userRepo user.Repository
}

// NewProfileUseCase 创建资料查询用例
func NewProfileUseCase(userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// Execute 查询当前用户资料
func (uc *ProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Role:     string(u.Role),
	}, nil
}
