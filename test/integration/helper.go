// Package integration 端到端集成测试
//
// 这些测试直接请求一个已经跑起来的服务实例,默认跳过;
// 设置BOOKMALL_API_URL后运行:
//
//	BOOKMALL_API_URL=http://localhost:8080 go test ./test/integration/
//
// 管理端用例(上架、标记支付/送达)还需要BOOKMALL_ADMIN_EMAIL /
// BOOKMALL_ADMIN_PASSWORD指向一个admin角色的账号。
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

var uniqueSeq atomic.Int64

// BaseURL 读取被测服务地址,未配置时跳过测试
func BaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BOOKMALL_API_URL")
	if url == "" {
		t.Skip("BOOKMALL_API_URL未设置,跳过集成测试")
	}
	return url + "/api/v1"
}

// Response 统一响应结构
type Response struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Price  int64  `json:"price"`
	Stock  int    `json:"stock"`
}

// OrderData 订单响应数据
type OrderData struct {
	OrderID        uint   `json:"order_id"`
	OrderNo        string `json:"order_no"`
	ItemsPrice     int64  `json:"items_price"`
	TaxAmount      int64  `json:"tax_amount"`
	ShippingAmount int64  `json:"shipping_amount"`
	TotalAmount    int64  `json:"total_amount"`
	TotalYuan      string `json:"total_yuan"`
	Status         string `json:"status"`
}

// OrderItemData 订单明细快照数据
type OrderItemData struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// OrderDetailData 订单详情响应数据
type OrderDetailData struct {
	OrderID     uint            `json:"order_id"`
	Items       []OrderItemData `json:"items"`
	ItemsPrice  int64           `json:"items_price"`
	TotalAmount int64           `json:"total_amount"`
	Status      string          `json:"status"`
}

// OrderStatusData 状态变更响应数据
type OrderStatusData struct {
	OrderID     uint   `json:"order_id"`
	Status      string `json:"status"`
	IsPaid      bool   `json:"is_paid"`
	IsDelivered bool   `json:"is_delivered"`
}

// DoJSON 发送请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPut, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), uniqueSeq.Add(1))
}

// UniqueTitle 生成唯一的书名,避开(title, author)唯一索引
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), uniqueSeq.Add(1))
}

// RegisterTestUser 注册测试用户并登录,返回邮箱和Access Token
func RegisterTestUser(t *testing.T, nickname string) (email string, token string) {
	t.Helper()
	base := BaseURL(t)

	email = GenerateTestEmail(nickname)
	registerResp := PostJSON(t, base+"/users/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": nickname,
	}, "")
	require.True(t, registerResp.Success, "注册失败: %s", registerResp.Message)

	return email, LoginTestUser(t, email, "Test1234")
}

// LoginTestUser 登录并返回Access Token
func LoginTestUser(t *testing.T, email, password string) string {
	t.Helper()
	base := BaseURL(t)

	loginResp := PostJSON(t, base+"/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.True(t, loginResp.Success, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &loginData), "解析登录响应失败")
	return loginData.AccessToken
}

// AdminToken 获取管理员Token,未配置管理员账号时跳过
func AdminToken(t *testing.T) string {
	t.Helper()
	email := os.Getenv("BOOKMALL_ADMIN_EMAIL")
	password := os.Getenv("BOOKMALL_ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("BOOKMALL_ADMIN_EMAIL/BOOKMALL_ADMIN_PASSWORD未设置,跳过管理端用例")
	}
	return LoginTestUser(t, email, password)
}

// PublishTestBook 上架测试图书(需要管理员Token),返回图书ID
// 默认价格8900分(89.00元)
func PublishTestBook(t *testing.T, adminToken string, title string, stock int) uint {
	t.Helper()
	base := BaseURL(t)

	resp := PostJSON(t, base+"/books", map[string]interface{}{
		"title":       title,
		"author":      "测试作者",
		"publisher":   "测试出版社",
		"price":       8900,
		"stock":       stock,
		"description": "集成测试用图书",
	}, adminToken)
	require.True(t, resp.Success, "图书上架失败: %s", resp.Message)

	var bookData BookData
	require.NoError(t, json.Unmarshal(resp.Data, &bookData), "解析图书响应失败")
	return bookData.ID
}

// OrderPayload 构造下单请求体
// items为[bookID, quantity]对;税费100分,运费200分
func OrderPayload(items [][2]int, clientTotal int64) map[string]interface{} {
	reqItems := make([]map[string]interface{}, len(items))
	for i, item := range items {
		reqItems[i] = map[string]interface{}{
			"book_id":  item[0],
			"quantity": item[1],
		}
	}
	return map[string]interface{}{
		"items": reqItems,
		"shipping_address": map[string]string{
			"address":     "中关村大街1号",
			"city":        "北京",
			"state":       "北京",
			"country":     "中国",
			"postal_code": "100080",
		},
		"payment_method":  "Cash on Delivery",
		"tax_amount":      100,
		"shipping_amount": 200,
		"total_amount":    clientTotal,
	}
}
