package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// bcryptCost 密码加密强度
// cost=12约250ms,每+1耗时翻倍,平衡安全性与登录性能
const bcryptCost = 12

// Service 用户领域服务
// 包含不属于单个实体的业务逻辑(密码加密、验证)
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, email, password, nickname string) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则:
// 1. 邮箱格式校验
// 2. 密码强度校验(8-20位,包含字母和数字)
// 3. 密码bcrypt加密
// 4. 邮箱唯一性由数据库UNIQUE索引保证,应用层SELECT再INSERT有并发窗口
func (s *service) Register(ctx context.Context, email, password, nickname string) (*User, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if len(nickname) < 2 || len(nickname) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "昵称长度应为2-50个字符")
	}

	// bcrypt自动加盐,相同密码每次加密结果不同
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(email, string(hashedPassword), nickname)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}

	return u, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// isValidEmail 邮箱格式校验
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验:8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
