// Package broadcast fans the status messages of provisioning runs out to subscribers, for instance clients following
// runs over Server-Sent Events. Publishing never blocks: a subscriber which does not keep up misses messages.
package broadcast

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/config"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	DefaultSubscriberBuffer = 64
	DefaultHeartbeatPeriod  = 15 * time.Second
)

type Configuration struct {
	// SubscriberBuffer is the number of messages kept for a subscriber which is not reading.
	SubscriberBuffer int           `mapstructure:"subscriber_buffer"`
	HeartbeatPeriod  time.Duration `mapstructure:"heartbeat_period"`
}

func (cfg *Configuration) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(cfg,
		validation.Field(&cfg.SubscriberBuffer, validation.Required, validation.Min(1)),
		validation.Field(&cfg.HeartbeatPeriod, validation.Required, validation.Min(time.Second)),
	))
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		SubscriberBuffer: DefaultSubscriberBuffer,
		HeartbeatPeriod:  DefaultHeartbeatPeriod,
	}
}

// Hub distributes status messages to subscribers.
type Hub struct {
	mu          deadlock.RWMutex
	subscribers map[uint64]*Subscription
	closed      bool
	nextID      *atomic.Uint64
	dropped     *atomic.Int64
	cfg         Configuration
	logger      logr.Logger
}

// NewHub returns a hub. A nil configuration means the default configuration.
func NewHub(cfg *Configuration, logger logr.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	return &Hub{
		subscribers: map[uint64]*Subscription{},
		nextID:      atomic.NewUint64(0),
		dropped:     atomic.NewInt64(0),
		cfg:         *cfg,
		logger:      logger,
	}
}

// Subscribe registers a subscriber to the messages of a project, or of every project if projectCode is empty.
func (h *Hub) Subscribe(projectCode string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, commonerrors.New(commonerrors.ErrUnavailable, "broadcast hub is closed")
	}
	s := &Subscription{
		id:          h.nextID.Inc(),
		projectCode: projectCode,
		messages:    make(chan saga.StatusMessage, max(h.cfg.SubscriberBuffer, 1)),
		hub:         h,
	}
	h.subscribers[s.id] = s
	return s, nil
}

// Broadcast sends a message to every interested subscriber. Its signature matches saga.StatusBroadcaster.
func (h *Hub) Broadcast(_ context.Context, msg saga.StatusMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subscribers {
		if s.projectCode != "" && s.projectCode != msg.ProjectCode {
			continue
		}
		select {
		case s.messages <- msg:
		default:
			h.dropped.Inc()
			h.logger.V(1).Info("slow subscriber missed a status message", "subscriber", s.id, "projectCode", msg.ProjectCode, "step", msg.CurrentStep)
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns the number of messages subscribers missed.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close ends every subscription. Messages broadcast afterwards are discarded.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, s := range h.subscribers {
		close(s.messages)
		delete(h.subscribers, id)
	}
	return nil
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, found := h.subscribers[id]
	if !found {
		return
	}
	close(s.messages)
	delete(h.subscribers, id)
}

// Subscription receives the messages of a hub until it is closed.
type Subscription struct {
	id          uint64
	projectCode string
	messages    chan saga.StatusMessage
	hub         *Hub
}

// Messages returns the channel of messages. It is closed when the subscription or the hub is closed.
func (s *Subscription) Messages() <-chan saga.StatusMessage {
	return s.messages
}

func (s *Subscription) Close() error {
	s.hub.unsubscribe(s.id)
	return nil
}
