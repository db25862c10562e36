package mailqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestProducerPublish(t *testing.T) {
	rdb := newTestRedis(t)
	logger := logrus.New()
	producer := NewProducer(rdb, logger, "test:mail")
	ctx := context.Background()

	if err := producer.SubmitActivation(ctx, 42); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := producer.SubmitActivation(ctx, 43); err != nil {
		t.Fatalf("submit: %v", err)
	}

	length, err := producer.QueueLength(ctx)
	if err != nil {
		t.Fatalf("length: %v", err)
	}
	if length != 2 {
		t.Fatalf("expected 2 messages, got %d", length)
	}

	if err := producer.SubmitActivation(ctx, 0); err == nil {
		t.Fatal("user id 0 must be rejected")
	}
}

func TestConsumerProcessesMessages(t *testing.T) {
	rdb := newTestRedis(t)
	logger := logrus.New()
	producer := NewProducer(rdb, logger, "test:mail")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []uint
	handler := func(ctx context.Context, msg *MailMessage) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, msg.UserID)
		return nil
	}

	consumer := NewConsumer(rdb, logger, "test:mail", "mailworker", "c1", handler,
		WithBlockTime(50*time.Millisecond), WithBatchSize(5))

	if err := producer.SubmitActivation(ctx, 7); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := producer.SubmitActivation(ctx, 8); err != nil {
		t.Fatalf("submit: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Run(ctx)
	}()

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for messages")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if seen[0] != 7 || seen[1] != 8 {
		t.Fatalf("wrong delivery order: %v", seen)
	}
}

func TestConsumerRetriesThenGivesUp(t *testing.T) {
	rdb := newTestRedis(t)
	logger := logrus.New()
	producer := NewProducer(rdb, logger, "test:mail")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	attempts := 0
	handler := func(ctx context.Context, msg *MailMessage) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return errors.New("smtp down")
	}

	consumer := NewConsumer(rdb, logger, "test:mail", "mailworker", "c1", handler,
		WithBlockTime(50*time.Millisecond), WithMaxRetry(3))

	if err := producer.SubmitActivation(ctx, 7); err != nil {
		t.Fatalf("submit: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = consumer.Run(ctx)
	}()

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := attempts
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out, attempts = %d", attempts)
		case <-time.After(20 * time.Millisecond):
		}
	}

	// 给消费者一点时间确认没有第4次尝试
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
}
