package dto

// RegisterRequest HTTP层注册请求
// HTTP层的DTO携带validator tag,应用层DTO不关心传输格式
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"go123456"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"书虫"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"go123456"`
}

// UserResponse 用户响应(不包含密码)
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"reader@example.com"`
	Nickname string `json:"nickname" example:"书虫"`
	Role     string `json:"role" example:"user"`
}
