package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/liuwen/bookmall/internal/domain/user"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户,邮箱唯一索引冲突转换为业务错误
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	db := dbFromContext(ctx, r.db)
	err := db.First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户(登录入口)
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	db := dbFromContext(ctx, r.db)
	err := db.Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Save(toUserModel(u)).Error; err != nil {
		return apperrors.Wrap(err, "更新用户失败")
	}
	return nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Nickname:  u.Nickname,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Nickname:  model.Nickname,
		Role:      user.Role(model.Role),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
