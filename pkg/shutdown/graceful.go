// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"geoprofiles/pkg/logger"
)

// Сообщения логгера.
const (
	LogSignalReceived = "shutdown signal received"
	LogHooksDone      = "all shutdown hooks completed"
	LogHookFailed     = "shutdown hook failed"
	LogHooksTimeout   = "shutdown timed out before all hooks completed"
)

// ErrShutdownTimeout возвращается, если хуки не уложились в отведенное время.
var ErrShutdownTimeout = errors.New("shutdown timeout exceeded")

// Hook освобождает один ресурс при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM (либо отмены ctx),
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	logger.Log(ctx).Info(ctx, LogSignalReceived)

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их не дольше timeout.
// Ошибки хуков логируются и объединяются в одну.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, hook := range hooks {
		wg.Add(1)
		go func(idx int, fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Int("hook", idx), zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(ctx, LogHooksDone)
	case <-hookCtx.Done():
		log.Warn(ctx, LogHooksTimeout, zap.Duration("timeout", timeout))
		return fmt.Errorf("%w: %w", ErrShutdownTimeout, hookCtx.Err())
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
