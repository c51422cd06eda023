// Package circuitbreaker 熔断器
//
// 用于保护对外部依赖（RabbitMQ等）的调用：失败率超过阈值时快速失败，
// 给下游恢复时间；超时后进入半开状态探测，成功则恢复。
//
// 状态机：CLOSED →（达到熔断条件）→ OPEN →（超时）→ HALF_OPEN
// →（探测成功）→ CLOSED / →（探测失败）→ OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 正常放行，统计失败
	StateClosed State = iota
	// StateOpen 熔断中，所有请求快速失败
	StateOpen
	// StateHalfOpen 探测中，放行少量请求
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许通过的最大请求数
	MaxRequests uint32

	// Interval CLOSED状态的统计窗口，窗口到期后计数清零
	Interval time.Duration

	// Timeout OPEN状态持续时间，到期后转HALF_OPEN
	Timeout time.Duration

	// ReadyToTrip 返回true时触发熔断
	ReadyToTrip func(counts Counts) bool
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// Reset 清零
func (c *Counts) Reset() {
	c.Requests = 0
	c.TotalSuccesses = 0
	c.TotalFailures = 0
	c.ConsecutiveSuccesses = 0
	c.ConsecutiveFailures = 0
}

// Requests在beforeRequest中已递增，这里只记结果
func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name        string
	maxRequests uint32
	interval    time.Duration
	timeout     time.Duration
	readyToTrip func(counts Counts) bool

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，防止跨代的结果污染计数
	counts     Counts
	expiry     time.Time

	onStateChange func(name string, from State, to State)
}

// ErrOpenState 熔断器打开时请求被拒绝
var ErrOpenState = errors.New("circuit breaker is open")

// NewCircuitBreaker 创建熔断器
//
//	cb := NewCircuitBreaker("mq-publisher", Config{
//	    MaxRequests: 3,
//	    Interval:    10 * time.Second,
//	    Timeout:     30 * time.Second,
//	    ReadyToTrip: func(counts Counts) bool {
//	        return counts.ConsecutiveFailures >= 5
//	    },
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	return &CircuitBreaker{
		name:          name,
		maxRequests:   config.MaxRequests,
		interval:      config.Interval,
		timeout:       config.Timeout,
		readyToTrip:   config.ReadyToTrip,
		state:         StateClosed,
		expiry:        time.Now().Add(config.Interval),
		onStateChange: func(name string, from State, to State) {},
	}
}

// SetStateChangeCallback 设置状态变化回调（记日志、更新监控指标）
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.onStateChange = fn
}

// Execute 经熔断器执行请求
//
// 熔断打开时返回ErrOpenState，不调用req。
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, err == nil)
	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)

	if state == StateOpen {
		return generation, ErrOpenState
	} else if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)

	// 状态已切换，结果作废
	if generation != before {
		return
	}

	if success {
		cb.onSuccess(state, now)
	} else {
		cb.onFailure(state, now)
	}
}

func (cb *CircuitBreaker) onSuccess(state State, now time.Time) {
	cb.counts.onSuccess()

	if state == StateHalfOpen {
		cb.setState(StateClosed, now)
	}
}

func (cb *CircuitBreaker) onFailure(state State, now time.Time) {
	cb.counts.onFailure()

	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState 处理状态过期：CLOSED窗口到期重置计数，OPEN超时转HALF_OPEN
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.Reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}

	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.Reset()

	switch state {
	case StateClosed:
		cb.expiry = now.Add(cb.interval)
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
