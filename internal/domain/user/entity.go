package user

import (
	"time"
)

// User 用户实体（聚合根）
// 设计说明：
// 1. 密码只存bcrypt哈希，实体不暴露明文相关方法
// 2. 领域实体不带GORM tag，infrastructure层负责映射
// 3. Role决定权限集合，见permission.go
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法），默认普通用户角色
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称（领域行为）
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}

// Can 判断用户是否具备某项权限
func (u *User) Can(perm Permission) bool {
	return u.Role.Can(perm)
}
