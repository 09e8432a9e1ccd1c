// Package background corre tareas "best-effort": se disparan sin esperar,
// sus errores se loguean y nunca vuelven al caller.
package background

import (
	"context"
	"sync"
	"time"

	"pet-grooming/internal/platform/logger"
)

const DefaultTimeout = 15 * time.Second

type Runner struct {
	log     logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRunner(log logger.Logger, timeout time.Duration) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{log: log, timeout: timeout}
}

// Go lanza fn desacoplada de la cancelación del request que la originó.
// Conserva los valores del contexto (request id, trace).
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("background task panicked", map[string]any{"task": name, "panic": rec})
			}
		}()

		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := fn(tctx); err != nil {
			r.log.Warn("background task failed", map[string]any{"task": name, "err": err})
		}
	}()
}

// Wait bloquea hasta que terminen las tareas en vuelo (shutdown y tests).
func (r *Runner) Wait() {
	r.wg.Wait()
}
