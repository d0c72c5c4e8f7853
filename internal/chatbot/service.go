package chatbot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"mindscape/be/internal/llm"
	"mindscape/be/internal/stream"
)

const systemPrompt = `You are the MindScape AI assistant, a warm and supportive companion for emotional wellness.
Listen carefully, reflect feelings back, and suggest small practical steps such as breathing exercises, journaling or reaching out to someone trusted.
You are not a therapist and never give a diagnosis. If the user mentions self-harm or being in danger, encourage them to contact local emergency services or a crisis line right away.
Keep answers short, kind and in plain language.`

type ServiceImpl struct {
	aiProvider llm.AIProvider
	model      string
	logger     *slog.Logger
}

func NewServiceImpl(aiProvider llm.AIProvider, model string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{aiProvider: aiProvider, model: model, logger: logger}
}

func (s *ServiceImpl) CompleteChat(ctx context.Context, req ChatRequest) (*stream.Completion, error) {
	messages, err := toLLMMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	reply, err := s.aiProvider.Complete(ctx, llm.CompletionRequest{Messages: messages, Model: s.modelFor(req)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}
	return &stream.Completion{Choices: []stream.CompletionChoice{{
		Message:      stream.Message{Role: stream.RoleAssistant, Content: reply.Content},
		FinishReason: "stop",
	}}}, nil
}

func (s *ServiceImpl) StreamChatResponse(ctx context.Context, req ChatRequest, w io.Writer) error {
	messages, err := toLLMMessages(req.Messages)
	if err != nil {
		return err
	}

	chunks, err := s.aiProvider.StreamComplete(ctx, llm.CompletionRequest{Messages: messages, Model: s.modelFor(req)})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	written := 0
	for chunk := range chunks {
		switch {
		case chunk.Err != nil:
			if written == 0 {
				return fmt.Errorf("%w: %w", ErrProviderFailed, chunk.Err)
			}
			return fmt.Errorf("%w: %w", ErrStreamIncomplete, chunk.Err)
		case chunk.Done:
			s.logger.Debug("chat completion streamed", "chunks", written)
			return stream.WriteDone(w)
		}

		if err := stream.WriteChunk(w, stream.ContentChunk(chunk.Content)); err != nil {
			return err
		}
		written++
	}

	// The provider closes the channel without Done only when ctx ends.
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStreamIncomplete
}

func (s *ServiceImpl) modelFor(req ChatRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return s.model
}

func toLLMMessages(in []stream.Message) ([]llm.Message, error) {
	if len(in) == 0 {
		return nil, ErrNoMessages
	}

	messages := make([]llm.Message, 0, len(in)+1)
	messages = append(messages, llm.Message{Role: stream.RoleSystem, Content: systemPrompt})
	for _, msg := range in {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role != stream.RoleUser && role != stream.RoleAssistant {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, msg.Role)
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}
	return messages, nil
}
