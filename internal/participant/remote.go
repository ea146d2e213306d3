package participant

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertable/internal/protocol"
)

// Remote is a participant behind a network transport. A reader goroutine
// queues every inbound line and marks the participant dead when the
// transport fails or closes.
type Remote struct {
	Seat

	transport Transport
	logger    *log.Logger

	mu     sync.Mutex
	queue  []string
	dead   bool
	notify chan struct{}
	done   chan struct{}
}

// NewRemote starts reading from transport straight away
func NewRemote(transport Transport, logger *log.Logger) *Remote {
	r := &Remote{
		transport: transport,
		logger:    logger.WithPrefix("remote").With("addr", transport.RemoteAddr()),
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go r.listen(r.logger)
	return r
}

func (r *Remote) listen(logger *log.Logger) {
	defer close(r.done)
	for {
		line, err := r.transport.ReadLine()
		if err != nil {
			logger.Debug("Connection closed", "error", err)
			r.mu.Lock()
			r.dead = true
			r.mu.Unlock()
			return
		}
		logger.Debug("Received", "line", line)

		r.mu.Lock()
		r.queue = append(r.queue, line)
		r.mu.Unlock()

		select {
		case r.notify <- struct{}{}:
		default:
		}
	}
}

func (r *Remote) Poll() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return "", false
	}
	line := r.queue[0]
	r.queue = r.queue[1:]
	return line, true
}

// Wait returns queued lines first. Once the queue is drained and the
// connection is gone it answers FOLD.
func (r *Remote) Wait(ctx context.Context) (string, error) {
	for {
		if line, ok := r.Poll(); ok {
			return line, nil
		}
		if r.Dead() {
			return protocol.VerbFold, nil
		}
		select {
		case <-r.notify:
		case <-r.done:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (r *Remote) Dead() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dead
}

// SetName also tags the logger with the bound name
func (r *Remote) SetName(name string) error {
	if err := r.Seat.SetName(name); err != nil {
		return err
	}
	r.logger = r.logger.With("player", name)
	return nil
}

// Send writes a line. A write failure marks the participant dead.
func (r *Remote) Send(line string) {
	if r.Dead() {
		return
	}
	r.logger.Debug("Sending", "line", line)
	if err := r.transport.WriteLine(line); err != nil {
		r.logger.Error("Write failed", "error", err)
		r.mu.Lock()
		r.dead = true
		r.mu.Unlock()
	}
}

func (r *Remote) Close() error {
	return r.transport.Close()
}
