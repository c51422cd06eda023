package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookPublish 图书上架
func TestBookPublish(t *testing.T) {
	base := BaseURL(t)
	adminToken := AdminToken(t)

	t.Run("管理员正常上架", func(t *testing.T) {
		title := UniqueTitle("Go语言实战")
		resp := PostJSON(t, base+"/books", map[string]interface{}{
			"title":     title,
			"author":    "威廉·肯尼迪",
			"publisher": "测试出版社",
			"genres":    []string{"编程", "计算机"},
			"price":     5900,
			"stock":     100,
		}, adminToken)

		require.True(t, resp.Success, "上架失败: %s", resp.Message)
		assert.Equal(t, 201, resp.StatusCode)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, title, data.Title)
		assert.Equal(t, int64(5900), data.Price)
	})

	t.Run("同名同作者重复上架被拒绝", func(t *testing.T) {
		title := UniqueTitle("重复图书")
		payload := map[string]interface{}{
			"title":  title,
			"author": "同一作者",
			"price":  5900,
			"stock":  10,
		}

		first := PostJSON(t, base+"/books", payload, adminToken)
		require.True(t, first.Success)

		second := PostJSON(t, base+"/books", payload, adminToken)
		assert.False(t, second.Success, "重复上架应该失败")
		assert.Equal(t, 409, second.StatusCode)
	})

	t.Run("普通用户上架被拒绝", func(t *testing.T) {
		_, userToken := RegisterTestUser(t, "normal_user")
		resp := PostJSON(t, base+"/books", map[string]interface{}{
			"title":  UniqueTitle("越权图书"),
			"author": "普通用户",
			"price":  5900,
			"stock":  10,
		}, userToken)

		assert.False(t, resp.Success, "普通用户应该没有上架权限")
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("价格为0被拒绝", func(t *testing.T) {
		resp := PostJSON(t, base+"/books", map[string]interface{}{
			"title":  UniqueTitle("免费图书"),
			"author": "测试作者",
			"price":  0,
			"stock":  10,
		}, adminToken)
		assert.False(t, resp.Success)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

// TestBookQuery 图书查询
func TestBookQuery(t *testing.T) {
	base := BaseURL(t)
	adminToken := AdminToken(t)
	bookID := PublishTestBook(t, adminToken, UniqueTitle("查询测试"), 10)

	t.Run("公开查询详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), "")
		require.True(t, resp.Success, "查询详情失败: %s", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, bookID, data.ID)
		assert.Equal(t, 10, data.Stock)
	})

	t.Run("公开查询列表", func(t *testing.T) {
		resp := GetJSON(t, base+"/books?page=1&page_size=5", "")
		require.True(t, resp.Success, "查询列表失败: %s", resp.Message)
	})

	t.Run("不存在的图书返回404", func(t *testing.T) {
		resp := GetJSON(t, base+"/books/99999999", "")
		assert.False(t, resp.Success)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("ID格式非法返回400", func(t *testing.T) {
		resp := GetJSON(t, base+"/books/abc", "")
		assert.False(t, resp.Success)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

// TestBookManage 图书管理(改价/下架)
func TestBookManage(t *testing.T) {
	base := BaseURL(t)
	adminToken := AdminToken(t)

	t.Run("改价后详情可见新价格", func(t *testing.T) {
		bookID := PublishTestBook(t, adminToken, UniqueTitle("改价测试"), 10)

		updateResp := PutJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), map[string]interface{}{
			"price": 12800,
		}, adminToken)
		require.True(t, updateResp.Success, "改价失败: %s", updateResp.Message)

		detail := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), "")
		require.True(t, detail.Success)

		var data BookData
		require.NoError(t, json.Unmarshal(detail.Data, &data))
		assert.Equal(t, int64(12800), data.Price)
	})

	t.Run("下架后详情不可见", func(t *testing.T) {
		bookID := PublishTestBook(t, adminToken, UniqueTitle("下架测试"), 10)

		delResp := DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", base, bookID), nil, adminToken)
		require.True(t, delResp.Success, "下架失败: %s", delResp.Message)

		detail := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), "")
		assert.False(t, detail.Success, "下架后的图书不应该可见")
		assert.Equal(t, 404, detail.StatusCode)
	})

	t.Run("下架后无法下单", func(t *testing.T) {
		_, buyerToken := RegisterTestUser(t, "deactivated_buyer")
		bookID := PublishTestBook(t, adminToken, UniqueTitle("下架下单测试"), 10)

		delResp := DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", base, bookID), nil, adminToken)
		require.True(t, delResp.Success)

		orderResp := PostJSON(t, base+"/orders", OrderPayload([][2]int{{int(bookID), 1}}, 9200), buyerToken)
		assert.False(t, orderResp.Success, "下架图书不应该能下单")
		assert.Equal(t, 404, orderResp.StatusCode)
	})
}
