package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(timeout time.Duration, trip func(Counts) bool) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: trip,
	})
}

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker(30*time.Second, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 5
	})

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error { return nil })
		require.NoError(t, err)
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(30*time.Second, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 5
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errors.New("mq unavailable") })
	}
	require.Equal(t, StateOpen, cb.State())

	// 熔断打开后快速失败，不调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)

	// 半开状态放行探测请求，成功则恢复CLOSED
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	time.Sleep(150 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still failing") })
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	var changes []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		changes = append(changes, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	assert.Equal(t, []string{
		"CLOSED->OPEN",
		"OPEN->HALF_OPEN",
		"HALF_OPEN->CLOSED",
	}, changes)
}

func TestCircuitBreaker_FailureRateTrip(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    time.Hour, // 长窗口避免统计被重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() > 0.5
		},
	})

	// 4成功 + 6失败，失败率60%
	for i := 0; i < 10; i++ {
		ok := i < 4
		_ = cb.Execute(func() error {
			if ok {
				return nil
			}
			return errors.New("fail")
		})
	}

	assert.Equal(t, StateOpen, cb.State())
}

// flakyPublisher 模拟前N次失败的事件发布
type flakyPublisher struct {
	failCount int
	callCount int
}

func (p *flakyPublisher) publish() error {
	p.callCount++
	if p.callCount <= p.failCount {
		return errors.New("connection refused")
	}
	return nil
}

func TestCircuitBreaker_ProtectsPublisher(t *testing.T) {
	pub := &flakyPublisher{failCount: 5}

	cb := NewCircuitBreaker("mq-publisher", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     200 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for i := 0; i < 10; i++ {
		_ = cb.Execute(pub.publish)
	}

	// 前5次失败触发熔断，后5次快速失败不再调用
	assert.Equal(t, 5, pub.callCount)

	time.Sleep(250 * time.Millisecond)

	err := cb.Execute(pub.publish)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func BenchmarkCircuitBreaker(b *testing.B) {
	cb := newTestBreaker(30*time.Second, func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 5
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(func() error { return nil })
	}
}
