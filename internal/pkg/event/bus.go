// Package event 进程内的异步消息总线
package event

import (
	"context"
	log "log/slog"
	"sync"
)

// Handler 事件处理函数，错误由处理函数自行记录
type Handler[T any] func(ctx context.Context, evt T)

// Bus 固定数量的 worker 消费缓冲通道，Publish 不阻塞调用方
type Bus[T any] struct {
	name     string
	ch       chan T
	workers  int
	mu       sync.RWMutex
	handlers []Handler[T]
	wg       sync.WaitGroup
}

func NewBus[T any](name string, buffer, workers int) *Bus[T] {
	if buffer < 0 {
		buffer = 0
	}
	if workers < 1 {
		workers = 1
	}
	return &Bus[T]{
		name:    name,
		ch:      make(chan T, buffer),
		workers: workers,
	}
}

func (b *Bus[T]) Subscribe(h Handler[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish 尽力投递，缓冲区满时丢弃并返回 false
func (b *Bus[T]) Publish(ctx context.Context, evt T) bool {
	select {
	case b.ch <- evt:
		return true
	default:
		log.WarnContext(ctx, "event dropped, buffer full", "bus", b.name)
		return false
	}
}

// Run 启动 worker，ctx 取消后处理完缓冲区中剩余事件再返回
func (b *Bus[T]) Run(ctx context.Context) error {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.loop(ctx)
		}()
	}
	b.wg.Wait()
	return nil
}

func (b *Bus[T]) loop(ctx context.Context) {
	for {
		select {
		case evt := <-b.ch:
			b.dispatch(evt)
		case <-ctx.Done():
			for {
				select {
				case evt := <-b.ch:
					b.dispatch(evt)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus[T]) dispatch(evt T) {
	b.mu.RLock()
	handlers := make([]Handler[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.safeCall(h, evt)
	}
}

func (b *Bus[T]) safeCall(h Handler[T], evt T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("event handler panic", "bus", b.name, "panic", r)
		}
	}()
	h(context.Background(), evt)
}
