package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	tomb "gopkg.in/tomb.v2"
)

func TestPoolProcessesAllTasks(t *testing.T) {
	pool := New(3)
	var processed int64

	tm, _ := tomb.WithContext(context.Background())
	tm.Go(func() error {
		pool.Setup(tm, func(t *tomb.Tomb, task any) error {
			atomic.AddInt64(&processed, 1)
			return nil
		})
		return nil
	})

	const n = 20
	for i := 0; i < n; i++ {
		pool.AddTask(i)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&processed) == n
	}, time.Second, time.Millisecond)

	tm.Kill(nil)
}
