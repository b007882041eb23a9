package notify

import (
	"context"
	"sync"
	"time"
)

// Dispatcher fires mail in a detached goroutine. The send outcome is
// discarded: a confirmation that never arrives must not fail or delay the
// reservation or order that triggered it, and it is not retried.
type Dispatcher struct {
	mailer  Mailer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer, timeout: 15 * time.Second}
}

func (d *Dispatcher) Go(to, subject, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		_ = d.mailer.Send(ctx, to, subject, body)
	}()
}

// Wait blocks until in-flight sends finish. Used on shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
