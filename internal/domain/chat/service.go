package chat

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON object mapping client email
// to that client's message thread. This per-client shape supersedes the
// older single-global-thread collection.
const storageKey = "dashboard-chat-messages-v2"

const (
	supportAgentName = "Support Agent"
	supportReplyText = "Thanks for your message! We'll get back to you shortly."
)

// Service owns the per-client chat threads and synthesizes the canned
// support reply after every client message.
type Service struct {
	store      store.Store
	now        func() time.Time
	after      func(d time.Duration, fn func())
	replyDelay time.Duration
	logger     *slog.Logger
}

// NewService creates a chat service over s. now and after may be nil for
// wall-clock time and real timers; replyDelay <= 0 selects the default 1.5 s.
func NewService(s store.Store, replyDelay time.Duration, now func() time.Time, after func(time.Duration, func()), logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if replyDelay <= 0 {
		replyDelay = 1500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: s, now: now, after: after, replyDelay: replyDelay, logger: logger}
}

// Thread returns the message thread for clientEmail, oldest first.
func (s *Service) Thread(ctx context.Context, clientEmail string) ([]Message, error) {
	if clientEmail == "" {
		return nil, ErrMissingClient
	}
	threads, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return threads[clientEmail], nil
}

// Threads returns the client emails that have a thread, sorted, for the
// support-side overview.
func (s *Service) Threads(ctx context.Context) ([]string, error) {
	threads, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(threads))
	for email := range threads {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

// Send appends a client message to its thread and schedules the automated
// support reply. The reply timer is fire-and-forget: it re-reads the thread
// when it fires and rewrites it, racing any writes in between.
func (s *Service) Send(ctx context.Context, clientEmail, user, text string) (Message, error) {
	message, err := s.append(ctx, clientEmail, user, text, SenderClient)
	if err != nil {
		return Message{}, err
	}

	s.after(s.replyDelay, func() {
		reply := Message{
			ID:         s.now().UnixMilli() + 1,
			User:       supportAgentName,
			Text:       supportReplyText,
			Timestamp:  s.now(),
			SenderType: SenderSupport,
		}
		// Detached from the sender's context: the reply outlives the call.
		ctx := context.Background()
		threads, err := s.load(ctx)
		if err != nil {
			s.logger.Error("auto-reply load failed", "client", clientEmail, "error", err)
			return
		}
		threads[clientEmail] = append(threads[clientEmail], reply)
		if err := s.save(ctx, threads); err != nil {
			s.logger.Error("auto-reply save failed", "client", clientEmail, "error", err)
		}
	})

	return message, nil
}

// SendSupport appends a support-side message to the client's thread. No
// reply is synthesized.
func (s *Service) SendSupport(ctx context.Context, clientEmail, agent, text string) (Message, error) {
	return s.append(ctx, clientEmail, agent, text, SenderSupport)
}

func (s *Service) append(ctx context.Context, clientEmail, user, text string, sender SenderType) (Message, error) {
	if clientEmail == "" {
		return Message{}, ErrMissingClient
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	threads, err := s.load(ctx)
	if err != nil {
		return Message{}, err
	}

	now := s.now()
	message := Message{
		ID:         now.UnixMilli(),
		User:       user,
		Text:       text,
		Timestamp:  now,
		SenderType: sender,
	}
	threads[clientEmail] = append(threads[clientEmail], message)
	if err := s.save(ctx, threads); err != nil {
		return Message{}, err
	}

	s.logger.InfoContext(ctx, "chat message sent", "client", clientEmail, "sender", sender)
	return message, nil
}

func (s *Service) load(ctx context.Context) (map[string][]Message, error) {
	threads, ok, err := store.LoadObject[map[string][]Message](ctx, s.store, storageKey)
	if err != nil {
		return nil, err
	}
	if !ok || threads == nil {
		threads = make(map[string][]Message)
	}
	return threads, nil
}

func (s *Service) save(ctx context.Context, threads map[string][]Message) error {
	return store.SaveObject(ctx, s.store, storageKey, threads)
}
