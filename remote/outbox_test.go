package remote_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nobonobo/video-stage/remote"
)

func TestOutboxKeepsOrder(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	outbox := remote.NewOutbox(16, func(data []byte) {
		// a slow first send must not let later messages overtake it
		if string(data) == "w-down" {
			time.Sleep(10 * time.Millisecond)
		}
		mu.Lock()
		sent = append(sent, string(data))
		mu.Unlock()
	})

	assert.True(t, outbox.Push([]byte("w-down")))
	assert.True(t, outbox.Push([]byte("w-up")))
	assert.True(t, outbox.Push([]byte("a-down")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go outbox.Run(ctx)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 3
	}, 5*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"w-down", "w-up", "a-down"}, sent)
}

func TestOutboxFull(t *testing.T) {
	outbox := remote.NewOutbox(1, func([]byte) {})
	assert.True(t, outbox.Push([]byte("first")))
	assert.False(t, outbox.Push([]byte("second")))
}
