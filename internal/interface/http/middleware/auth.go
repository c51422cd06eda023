package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/liuwen/bookmall/internal/domain/user"
	"github.com/liuwen/bookmall/internal/infrastructure/persistence/redis"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
	"github.com/liuwen/bookmall/pkg/jwt"
	"github.com/liuwen/bookmall/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明:
// 1. 从Header提取Token,验证有效性
// 2. 检查Token黑名单(登出、强制下线的Token)
// 3. 将用户ID/邮箱/角色注入Context,Handler与权限中间件直接取用
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误"))
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 黑名单检查不可省略:已登出的Token签名依然有效
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, apperrors.Wrap(err, "验证Token失败"))
			c.Abort()
			return
		}
		if isBlacklisted {
			response.Error(c, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效,请重新登录"))
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// RequirePermission 要求指定权限(在RequireAuth之后使用)
// Token携带角色,权限判断无需查库
func (m *AuthMiddleware) RequirePermission(perm user.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := user.Role(GetRole(c))
		if !role.Can(perm) {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录:有Token则验证注入,没有则按匿名继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString := parts[1]
			claims, err := m.jwtManager.ParseToken(tokenString)
			if err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("role", claims.Role)
			}
		}

		c.Next()
	}
}

// GetUserID 从Context获取当前登录用户ID,未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetRole 从Context获取当前登录用户角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetAccessToken 从Context获取原始Access Token(登出拉黑用)
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
