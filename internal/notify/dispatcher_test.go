package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("relay unreachable")
	}
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}

func TestDispatcherDelivers(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer)

	d.Go("a@example.com", "hello", "body")
	d.Wait()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com|hello|body", mailer.sent[0])
}

// A failing mailer must be invisible to the caller: Go never blocks on
// the outcome and never reports it.
func TestDispatcherDiscardsFailures(t *testing.T) {
	mailer := &recordingMailer{fail: true}
	d := NewDispatcher(mailer)

	d.Go("a@example.com", "hello", "body")
	d.Wait()

	assert.Equal(t, 1, mailer.calls)
	assert.Empty(t, mailer.sent)
}

func TestDispatcherConcurrentSends(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer)

	for i := 0; i < 20; i++ {
		d.Go("a@example.com", "s", "b")
	}
	d.Wait()

	assert.Equal(t, 20, mailer.calls)
}
