package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserRegister 用户注册
func TestUserRegister(t *testing.T) {
	base := BaseURL(t)

	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("register")
		resp := PostJSON(t, base+"/users/register", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "注册测试",
		}, "")

		require.True(t, resp.Success, "注册应该成功: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, email, data.Email)
		assert.Equal(t, "user", data.Role, "新用户角色应该是user")
	})

	t.Run("重复邮箱被拒绝", func(t *testing.T) {
		email := GenerateTestEmail("dup")
		first := PostJSON(t, base+"/users/register", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "首次注册",
		}, "")
		require.True(t, first.Success)

		second := PostJSON(t, base+"/users/register", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "重复注册",
		}, "")
		assert.False(t, second.Success, "重复邮箱应该失败")
		assert.Equal(t, 409, second.StatusCode)
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		resp := PostJSON(t, base+"/users/register", map[string]string{
			"email":    GenerateTestEmail("weak"),
			"password": "12345678", // 纯数字
			"nickname": "弱密码用户",
		}, "")
		assert.False(t, resp.Success, "纯数字密码应该失败")
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("非法邮箱被拒绝", func(t *testing.T) {
		resp := PostJSON(t, base+"/users/register", map[string]string{
			"email":    "not-an-email",
			"password": "Test1234",
			"nickname": "非法邮箱",
		}, "")
		assert.False(t, resp.Success)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

// TestUserLogin 用户登录
func TestUserLogin(t *testing.T) {
	base := BaseURL(t)
	email, _ := RegisterTestUser(t, "login_tester")

	t.Run("正常登录", func(t *testing.T) {
		resp := PostJSON(t, base+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.True(t, resp.Success, "登录应该成功: %s", resp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)
	})

	t.Run("密码错误", func(t *testing.T) {
		resp := PostJSON(t, base+"/users/login", map[string]string{
			"email":    email,
			"password": "Wrong1234",
		}, "")
		assert.False(t, resp.Success)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		resp := PostJSON(t, base+"/users/login", map[string]string{
			"email":    GenerateTestEmail("ghost"),
			"password": "Test1234",
		}, "")
		assert.False(t, resp.Success)
	})
}

// TestUserProfile 资料查询与登出
func TestUserProfile(t *testing.T) {
	base := BaseURL(t)
	email, token := RegisterTestUser(t, "profile_tester")

	t.Run("查询资料", func(t *testing.T) {
		resp := GetJSON(t, base+"/users/profile", token)
		require.True(t, resp.Success, "查询资料失败: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, email, data.Email)
	})

	t.Run("未登录查询被拒绝", func(t *testing.T) {
		resp := GetJSON(t, base+"/users/profile", "")
		assert.False(t, resp.Success)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		_, token := RegisterTestUser(t, "logout_tester")

		logoutResp := PostJSON(t, base+"/users/logout", nil, token)
		require.True(t, logoutResp.Success, "登出失败: %s", logoutResp.Message)

		// 登出后的Token进了黑名单
		resp := GetJSON(t, base+"/users/profile", token)
		assert.False(t, resp.Success, "登出后的Token应该被拒绝")
		assert.Equal(t, 401, resp.StatusCode)
	})
}
