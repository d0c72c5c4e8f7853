package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"mindscape/be/internal/stream"
)

// ContentTypeChat tags alerts raised from chat messages.
const ContentTypeChat = "chat"

type ServiceImpl struct {
	repo    Repository
	opener  Opener
	guard   Guard
	flagger Flagger
	logger  *slog.Logger
}

// NewServiceImpl wires the conversation service. flagger may be nil.
func NewServiceImpl(repo Repository, opener Opener, guard Guard, flagger Flagger, logger *slog.Logger) *ServiceImpl {
	if guard == nil {
		guard = NewMemoryGuard()
	}
	return &ServiceImpl{
		repo:    repo,
		opener:  opener,
		guard:   guard,
		flagger: flagger,
		logger:  logger,
	}
}

func (s *ServiceImpl) History(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	messages, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if len(messages) > 0 {
		return messages, nil
	}

	welcome := newMessage(userID, stream.RoleAssistant, WelcomeMessage)
	if err := s.repo.Create(ctx, welcome); err != nil {
		return nil, fmt.Errorf("seed welcome message: %w", err)
	}
	return []Message{*welcome}, nil
}

func (s *ServiceImpl) Send(ctx context.Context, userID uuid.UUID, content string, onFragment func(string) error) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	release, ok, err := s.guard.Acquire(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSendInFlight
	}
	defer release()

	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	userMessage := newMessage(userID, stream.RoleUser, content)
	if err := s.repo.Create(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}
	s.flag(ctx, userID, content)

	st, err := s.opener.Open(ctx, toWire(history), stream.Message{Role: stream.RoleUser, Content: content})
	if err != nil {
		return nil, err
	}
	defer st.Close()

	for {
		fragment, err := st.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Warn("chat reply not completed", "user_id", userID, "error", err, "partial_len", len(st.Text()))
			return nil, err
		}
		if err := onFragment(fragment); err != nil {
			st.Cancel()
			return nil, err
		}
	}

	text := st.Text()
	if !st.Done() {
		s.logger.Warn("chat reply ended without sentinel", "user_id", userID, "partial_len", len(text))
		return nil, &stream.TransportInterruptedError{Partial: text, Err: stream.ErrNoSentinel}
	}
	if text == "" {
		s.logger.Warn("chat reply was empty", "user_id", userID)
		return nil, nil
	}

	reply := newMessage(userID, stream.RoleAssistant, text)
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}
	return reply, nil
}

func (s *ServiceImpl) flag(ctx context.Context, userID uuid.UUID, content string) {
	if s.flagger == nil {
		return
	}
	if err := s.flagger.Scan(ctx, userID, ContentTypeChat, content); err != nil {
		s.logger.Error("failed to scan chat message", "user_id", userID, "error", err)
	}
}

func newMessage(userID uuid.UUID, role, content string) *Message {
	return &Message{
		ID:      uuid.New(),
		UserID:  userID,
		Role:    role,
		Content: content,
	}
}

func toWire(messages []Message) []stream.Message {
	out := make([]stream.Message, len(messages))
	for i, m := range messages {
		out[i] = stream.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
