package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/liuwen/bookmall/internal/domain/book"
	"github.com/liuwen/bookmall/internal/mocks"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func activeBook(id uint) *book.Book {
	return &book.Book{
		ID:     id,
		Title:  "Go语言实战",
		Author: "威廉·肯尼迪",
		Price:  5900,
		Stock:  10,
		Active: true,
	}
}

func TestGetBookCacheHit(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	cache := new(mocks.MockBookCache)
	uc := NewGetBookUseCase(book.NewService(repo), cache)

	cache.On("Get", mock.Anything, uint(1)).Return(activeBook(1), nil)

	view, err := uc.Execute(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "Go语言实战", view.Title)
	// 命中缓存不应查库
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestGetBookCacheMiss(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	cache := new(mocks.MockBookCache)
	uc := NewGetBookUseCase(book.NewService(repo), cache)

	b := activeBook(1)
	cache.On("Get", mock.Anything, uint(1)).Return(nil, nil) // miss
	repo.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
	cache.On("Set", mock.Anything, b).Return(nil) // 查库后回填

	view, err := uc.Execute(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), view.ID)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestGetBookCacheDegradation(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	cache := new(mocks.MockBookCache)
	uc := NewGetBookUseCase(book.NewService(repo), cache)

	// redis故障:读写都报错,读请求照常返回
	cache.On("Get", mock.Anything, uint(1)).Return(nil, errors.New("redis: connection refused"))
	repo.On("FindByID", mock.Anything, uint(1)).Return(activeBook(1), nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis: connection refused"))

	view, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5900), view.Price)
}

func TestGetBookWithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	uc := NewGetBookUseCase(book.NewService(repo), nil)

	repo.On("FindByID", mock.Anything, uint(1)).Return(activeBook(1), nil)

	view, err := uc.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
}

func TestGetBookNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	cache := new(mocks.MockBookCache)
	uc := NewGetBookUseCase(book.NewService(repo), cache)

	cache.On("Get", mock.Anything, uint(404)).Return(nil, nil)
	repo.On("FindByID", mock.Anything, uint(404)).Return(nil, book.ErrBookNotFound)

	_, err := uc.Execute(ctx, 404)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBookNotFound))
}

func TestGetBookDeactivated(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	cache := new(mocks.MockBookCache)
	uc := NewGetBookUseCase(book.NewService(repo), cache)

	// 已下架图书对外视为不存在,且不回填缓存
	b := activeBook(2)
	b.Deactivate()
	cache.On("Get", mock.Anything, uint(2)).Return(nil, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(b, nil)

	_, err := uc.Execute(ctx, 2)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeBookNotFound))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}
