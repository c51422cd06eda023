package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/liuwen/bookmall/internal/domain/book"
	"github.com/liuwen/bookmall/internal/mocks"
	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func publishRequest() PublishBookRequest {
	return PublishBookRequest{
		Title:           "Go语言实战",
		Author:          "威廉·肯尼迪",
		Publisher:       "人民邮电出版社",
		Genres:          []string{"编程"},
		PublicationYear: 2017,
		Language:        "中文",
		Price:           5900,
		Stock:           10,
	}
}

func TestPublishBook(t *testing.T) {
	ctx := context.Background()

	t.Run("上架成功", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		uc := NewPublishBookUseCase(book.NewService(repo))

		repo.On("FindByTitleAuthor", mock.Anything, "Go语言实战", "威廉·肯尼迪").
			Return(nil, book.ErrBookNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*book.Book")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*book.Book).ID = 1
			}).Return(nil)

		view, err := uc.Execute(ctx, publishRequest())
		require.NoError(t, err)

		assert.Equal(t, uint(1), view.ID)
		assert.Equal(t, int64(5900), view.Price)
		repo.AssertExpectations(t)
	})

	t.Run("同名同作者视为重复", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		uc := NewPublishBookUseCase(book.NewService(repo))

		repo.On("FindByTitleAuthor", mock.Anything, "Go语言实战", "威廉·肯尼迪").
			Return(activeBook(1), nil)

		_, err := uc.Execute(ctx, publishRequest())
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeBookDuplicate))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("价格越界", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		uc := NewPublishBookUseCase(book.NewService(repo))

		req := publishRequest()
		req.Price = 0
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidPrice)

		req.Price = 10000000
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
	})

	t.Run("库存为负", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		uc := NewPublishBookUseCase(book.NewService(repo))

		req := publishRequest()
		req.Stock = -1
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidStock)
	})
}

func TestManageBookUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("改价并失效缓存", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		cache := new(mocks.MockBookCache)
		uc := NewManageBookUseCase(book.NewService(repo), cache)

		b := activeBook(1)
		repo.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
		repo.On("Update", mock.Anything, b).Return(nil)
		cache.On("Delete", mock.Anything, uint(1)).Return(nil)

		view, err := uc.Update(ctx, UpdateBookRequest{ID: 1, Price: 12800})
		require.NoError(t, err)

		assert.Equal(t, int64(12800), view.Price)
		cache.AssertExpectations(t)
	})

	t.Run("覆盖库存", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		cache := new(mocks.MockBookCache)
		uc := NewManageBookUseCase(book.NewService(repo), cache)

		b := activeBook(1)
		repo.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
		repo.On("Update", mock.Anything, b).Return(nil)
		cache.On("Delete", mock.Anything, uint(1)).Return(nil)

		stock := 50
		view, err := uc.Update(ctx, UpdateBookRequest{ID: 1, Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, 50, view.Stock)
	})

	t.Run("下架并失效缓存", func(t *testing.T) {
		repo := new(mocks.MockBookRepository)
		cache := new(mocks.MockBookCache)
		uc := NewManageBookUseCase(book.NewService(repo), cache)

		b := activeBook(1)
		repo.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
		repo.On("Update", mock.Anything, b).Return(nil)
		cache.On("Delete", mock.Anything, uint(1)).Return(nil)

		require.NoError(t, uc.Deactivate(ctx, 1))
		assert.False(t, b.Active)
		cache.AssertExpectations(t)
	})
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockBookRepository)
	uc := NewListBooksUseCase(book.NewService(repo))

	repo.On("List", mock.Anything, book.ListParams{Page: 1, PageSize: 20}).
		Return([]*book.Book{activeBook(1), activeBook(2)}, int64(42), nil)

	resp, err := uc.Execute(ctx, ListBooksRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.Total)
	assert.Len(t, resp.List, 2)
	assert.Equal(t, 3, resp.TotalPages) // 42/20 向上取整
}
