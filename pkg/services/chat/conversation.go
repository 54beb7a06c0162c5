package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

const timestampLayout = "15:04"

// Listener observes every transition of a conversation.
type Listener func(status domain.ChatStatus)

// Conversation is the running chat log. Each submitted query moves it from
// idle to processing and back; listeners see both transitions in order.
type Conversation struct {
	submitMu sync.Mutex

	mu         sync.RWMutex
	messages   []domain.Message
	processing bool
	listeners  []Listener

	now   func() time.Time
	newID func() string
}

type Option func(*Conversation)

func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Conversation) { c.newID = newID }
}

func NewConversation(opts ...Option) *Conversation {
	c := &Conversation{
		messages: make([]domain.Message, 0),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers l to be called after every state transition.
func (c *Conversation) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Submit appends query as a user message, answers it and appends the reply.
// Blank queries are ignored and return nil.
func (c *Conversation) Submit(ctx context.Context, query string, facts Facts) *domain.Message {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	c.transition(domain.RoleUser, query, true)
	reply := c.transition(domain.RoleBot, Respond(ctx, query, facts), false)
	return &reply
}

// ClickSuggestion submits the suggestion at index.
func (c *Conversation) ClickSuggestion(ctx context.Context, index int, facts Facts) (*domain.Message, bool) {
	if index < 0 || index >= len(suggestions) {
		return nil, false
	}
	return c.Submit(ctx, suggestions[index], facts), true
}

func (c *Conversation) transition(role domain.Role, content string, processing bool) domain.Message {
	msg := domain.Message{
		ID:        c.newID(),
		Role:      role,
		Content:   content,
		Timestamp: c.now().Format(timestampLayout),
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.processing = processing
	status := c.statusLocked()
	listeners := append([]Listener{}, c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(status)
	}
	return msg
}

func (c *Conversation) Messages() []domain.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Message{}, c.messages...)
}

func (c *Conversation) Processing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processing
}

func (c *Conversation) Status() domain.ChatStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statusLocked()
}

func (c *Conversation) statusLocked() domain.ChatStatus {
	return domain.ChatStatus{Processing: c.processing, Messages: len(c.messages)}
}
