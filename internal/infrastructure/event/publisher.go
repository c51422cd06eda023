// Package event 订单事件发布实现
//
// 把pkg/mq的RabbitMQ发布器包一层熔断器:MQ抖动时快速失败,
// 不让事件发布拖垮下单链路(调用方对发布失败只记日志)。
package event

import (
	"context"
	"errors"
	"log"
	"time"

	apporder "github.com/liuwen/bookmall/internal/application/order"
	"github.com/liuwen/bookmall/pkg/circuitbreaker"
	"github.com/liuwen/bookmall/pkg/metrics"
	"github.com/liuwen/bookmall/pkg/mq"
)

// Publisher 带熔断保护的事件发布器
type Publisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
	exchange  string
}

// NewPublisher 创建事件发布器
// 熔断策略:连续5次失败熔断,30秒后半开探测
func NewPublisher(publisher *mq.Publisher, exchange string) apporder.EventPublisher {
	cb := circuitbreaker.NewCircuitBreaker("mq-publisher", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器状态变化: name=%s, %s -> %s", name, from, to)
		if metrics.CircuitBreakerState != nil {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		}
	})

	return &Publisher{
		publisher: publisher,
		breaker:   cb,
		exchange:  exchange,
	}
}

// Publish 发布事件,熔断打开时直接返回ErrOpenState
func (p *Publisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	if metrics.CircuitBreakerRequests != nil {
		result := "success"
		switch {
		case errors.Is(err, circuitbreaker.ErrOpenState):
			result = "rejected"
		case err != nil:
			result = "failure"
		}
		metrics.CircuitBreakerRequests.WithLabelValues("mq-publisher", result).Inc()
	}

	if err != nil {
		return err
	}

	if metrics.MessagesPublishedTotal != nil {
		metrics.MessagesPublishedTotal.WithLabelValues(p.exchange, routingKey).Inc()
	}
	return nil
}

// NopPublisher 空实现,MQ未启用时注入
// 事件直接打日志,下单主流程完全不感知MQ是否存在
type NopPublisher struct{}

// NewNopPublisher 创建空发布器
func NewNopPublisher() apporder.EventPublisher {
	return &NopPublisher{}
}

// Publish 只记日志
func (p *NopPublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	log.Printf("MQ未启用,事件仅记录: routing_key=%s, event=%+v", routingKey, event)
	return nil
}
