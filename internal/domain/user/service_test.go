package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

// stubUserRepo 内存版仓储,避免与internal/mocks形成循环依赖
type stubUserRepo struct {
	byEmail map[string]*User
	created []*User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*User)}
}

func (s *stubUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrEmailDuplicate
	}
	u.ID = uint(len(s.created) + 1)
	s.byEmail[u.Email] = u
	s.created = append(s.created, u)
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range s.created {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Update(ctx context.Context, u *User) error { return nil }

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		svc := NewService(newStubUserRepo())

		u, err := svc.Register(ctx, "alice@example.com", "Pass1234", "Alice")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, RoleUser, u.Role)
		assert.NotEqual(t, "Pass1234", u.Password, "密码必须加密存储")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Pass1234")))
	})

	t.Run("邮箱重复", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := NewService(repo)

		_, err := svc.Register(ctx, "dup@example.com", "Pass1234", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "dup@example.com", "Pass5678", "Bob")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeEmailDuplicate))
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		svc := NewService(newStubUserRepo())

		_, err := svc.Register(ctx, "not-an-email", "Pass1234", "Alice")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("弱密码", func(t *testing.T) {
		svc := NewService(newStubUserRepo())

		for _, pwd := range []string{"short1", "allletters", "12345678", "0123456789012345678x9"} {
			_, err := svc.Register(ctx, "weak@example.com", pwd, "Alice")
			assert.Error(t, err, "密码%q应被拒绝", pwd)
		}
	})

	t.Run("昵称长度", func(t *testing.T) {
		svc := NewService(newStubUserRepo())

		_, err := svc.Register(ctx, "nick@example.com", "Pass1234", "A")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidParams))
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	// 测试中用MinCost避免每次bcrypt耗时数百毫秒
	hashed, err := bcrypt.GenerateFromPassword([]byte("Pass1234"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newStubUserRepo()
	require.NoError(t, repo.Create(ctx, NewUser("alice@example.com", string(hashed), "Alice")))
	svc := NewService(repo)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "Pass1234")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "Wrong1234")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidPassword))
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "Pass1234")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeUserNotFound))
	})
}

func TestPasswordStrength(t *testing.T) {
	assert.NoError(t, validatePasswordStrength("Pass1234"))
	assert.NoError(t, validatePasswordStrength("a1234567"))
	assert.Error(t, validatePasswordStrength("Pass123"))      // 不足8位
	assert.Error(t, validatePasswordStrength("password"))     // 无数字
	assert.Error(t, validatePasswordStrength("12345678"))     // 无字母
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("alice@example.com"))
	assert.True(t, isValidEmail("a.b+c@sub.example.cn"))
	assert.False(t, isValidEmail("alice"))
	assert.False(t, isValidEmail("alice@"))
	assert.False(t, isValidEmail("@example.com"))
}
