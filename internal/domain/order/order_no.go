package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式:ORD + 时间戳(秒) + 6位随机数,如 ORD1699248000123456
// 全局近似唯一、时间有序、不可预测(防止恶意遍历)。
// 订单表对order_no有唯一索引,极小概率冲突时由数据库兜底。
func GenerateOrderNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("ORD%d%06d", timestamp, random)
}
