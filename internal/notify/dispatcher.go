package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	sendTimeout     = 15 * time.Second
	shutdownTimeout = 20 * time.Second
)

// Dispatcher sends email notifications without blocking the caller.
// Delivery is best effort: failures are logged, never propagated, so a
// booking state transition can not be rolled back by a mail outage.
type Dispatcher struct {
	mailer Mailer
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher on top of the given Mailer.
func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

// SendAsync fires off a mail in a goroutine with a bounded timeout.
// The caller's context is deliberately not used: the request finishing
// must not cancel the delivery.
func (d *Dispatcher) SendAsync(to, subject, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.mailer.Send(ctx, to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send notification mail")
			return
		}
		log.Debug().Str("to", to).Str("subject", subject).Msg("notification mail sent")
	}()
}

// Shutdown waits for in-flight deliveries, up to a bounded grace period.
func (d *Dispatcher) Shutdown() {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		log.Warn().Msg("shutdown reached before all notification mail was delivered")
	}
}
