package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type orderEvent struct {
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	Action  string `json:"action"`
}

// amqpURL 返回测试用RabbitMQ地址；未配置则跳过（需要真实MQ环境）
func amqpURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BOOKMALL_AMQP_URL")
	if url == "" {
		t.Skip("未设置BOOKMALL_AMQP_URL，跳过MQ集成测试")
	}
	return url
}

func TestPublisher_Publish(t *testing.T) {
	publisher, err := NewPublisher(amqpURL(t), "bookmall.test.events", "topic")
	require.NoError(t, err)
	defer publisher.Close()

	event := orderEvent{OrderID: 123, UserID: 456, Action: "created"}
	err = publisher.Publish(context.Background(), "order.created", event)
	require.NoError(t, err)
}

func TestPubSub_Integration(t *testing.T) {
	url := amqpURL(t)

	consumer, err := NewConsumer(
		url,
		"bookmall.test.events",
		"topic",
		"test.order.queue",
		[]string{"order.*"},
	)
	require.NoError(t, err)
	defer consumer.Close()

	publisher, err := NewPublisher(url, "bookmall.test.events", "topic")
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	received := make(chan orderEvent, 3)
	go func() {
		consumer.Consume(ctx, func(body []byte) error {
			var event orderEvent
			if err := json.Unmarshal(body, &event); err != nil {
				return err
			}
			received <- event
			return nil
		})
	}()

	// 等消费者完成绑定
	time.Sleep(500 * time.Millisecond)

	actions := []string{"created", "paid", "delivered"}
	for i, action := range actions {
		err := publisher.Publish(ctx, "order."+action, orderEvent{
			OrderID: uint(i + 1),
			UserID:  100,
			Action:  action,
		})
		require.NoError(t, err)
	}

	got := make([]string, 0, len(actions))
	for range actions {
		select {
		case event := <-received:
			got = append(got, event.Action)
		case <-ctx.Done():
			t.Fatalf("等待消息超时，已收到: %v", got)
		}
	}

	require.ElementsMatch(t, actions, got)
}
