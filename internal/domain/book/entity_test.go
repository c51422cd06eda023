package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func newTestBook() *Book {
	return NewBook("Go语言实战", "威廉·肯尼迪", "实战书籍", "人民邮电出版社",
		[]string{"编程"}, 2017, "中文", 5900, 10, "")
}

func TestNewBook(t *testing.T) {
	b := newTestBook()

	assert.Equal(t, "Go语言实战", b.Title)
	assert.Equal(t, int64(5900), b.Price)
	assert.Equal(t, 10, b.Stock)
	assert.True(t, b.Active, "新书默认上架")
	assert.Zero(t, b.AverageRating)
	assert.Zero(t, b.RatingCount)
}

func TestBookUpdatePrice(t *testing.T) {
	b := newTestBook()

	require.NoError(t, b.UpdatePrice(12800))
	assert.Equal(t, int64(12800), b.Price)

	assert.ErrorIs(t, b.UpdatePrice(0), ErrInvalidPrice)
	assert.ErrorIs(t, b.UpdatePrice(-100), ErrInvalidPrice)
	assert.Equal(t, int64(12800), b.Price, "非法价格不应该生效")
}

func TestBookUpdateStock(t *testing.T) {
	b := newTestBook()

	require.NoError(t, b.UpdateStock(0))
	assert.Equal(t, 0, b.Stock)

	assert.ErrorIs(t, b.UpdateStock(-1), ErrInvalidStock)
}

func TestBookDecrStock(t *testing.T) {
	t.Run("正常扣减", func(t *testing.T) {
		b := newTestBook()
		require.NoError(t, b.DecrStock(3))
		assert.Equal(t, 7, b.Stock)
	})

	t.Run("扣到零", func(t *testing.T) {
		b := newTestBook()
		require.NoError(t, b.DecrStock(10))
		assert.Equal(t, 0, b.Stock)
	})

	t.Run("库存不足携带明细", func(t *testing.T) {
		b := newTestBook()
		b.Stock = 5

		err := b.DecrStock(8)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInsufficientStock))
		// 错误信息要能告诉用户是哪本书、差多少
		assert.Contains(t, err.Error(), "Go语言实战")
		assert.Contains(t, err.Error(), "剩余5件")
		assert.Contains(t, err.Error(), "需要8件")
		assert.Equal(t, 5, b.Stock, "失败时库存不变")
	})

	t.Run("非法数量", func(t *testing.T) {
		b := newTestBook()
		assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.DecrStock(-1), ErrInvalidQuantity)
	})
}

func TestBookIncrStock(t *testing.T) {
	b := newTestBook()
	require.NoError(t, b.IncrStock(5))
	assert.Equal(t, 15, b.Stock)

	assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
}

func TestBookUpdateInfo(t *testing.T) {
	b := newTestBook()

	// 只改书名和分类,其余字段不动
	b.UpdateInfo("Go语言高级编程", "", "", "", []string{"进阶"}, 0, "", "")

	assert.Equal(t, "Go语言高级编程", b.Title)
	assert.Equal(t, "威廉·肯尼迪", b.Author)
	assert.Equal(t, []string{"进阶"}, b.Genres)
	assert.Equal(t, 2017, b.PublicationYear)
}

func TestBookAddRating(t *testing.T) {
	b := newTestBook()

	require.NoError(t, b.AddRating(4))
	require.NoError(t, b.AddRating(5))

	assert.Equal(t, 2, b.RatingCount)
	assert.InDelta(t, 4.5, b.AverageRating, 0.0001)

	assert.ErrorIs(t, b.AddRating(5.5), ErrInvalidRating)
	assert.ErrorIs(t, b.AddRating(-1), ErrInvalidRating)
	assert.Equal(t, 2, b.RatingCount, "非法评分不计入")
}

func TestBookDeactivate(t *testing.T) {
	b := newTestBook()

	b.Deactivate()
	assert.False(t, b.Active)

	b.Activate()
	assert.True(t, b.Active)
}
