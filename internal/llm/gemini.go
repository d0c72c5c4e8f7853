package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/iterator"
)

const geminiModelRole = "model"

type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiAIProvider(client *genai.Client, defaultModel string) *GeminiProvider {
	return &GeminiProvider{client: client, defaultModel: defaultModel}
}

func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (Message, error) {
	chat, last, err := p.startChat(req)
	if err != nil {
		return Message{}, err
	}
	res, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Role:    openai.ChatMessageRoleAssistant,
		Content: responseText(res),
	}, nil
}

func (p *GeminiProvider) StreamComplete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	chat, last, err := p.startChat(req)
	if err != nil {
		return nil, err
	}
	resIterator := chat.SendMessageStream(ctx, last...)

	chunks := make(chan StreamChunk)

	go func() {
		defer close(chunks)

		for {
			resp, err := resIterator.Next()
			if errors.Is(err, iterator.Done) {
				send(ctx, chunks, StreamChunk{Done: true})
				return
			}
			if err != nil {
				send(ctx, chunks, StreamChunk{Err: err})
				return
			}

			if text := responseText(resp); text != "" {
				if !send(ctx, chunks, StreamChunk{Content: text}) {
					return
				}
			}
		}
	}()

	return chunks, nil
}

// -----------------Private Helper Functions-----------------

// startChat maps the transcript onto a Gemini chat session and returns the
// parts to send for the final user turn.
func (p *GeminiProvider) startChat(req CompletionRequest) (*genai.ChatSession, []genai.Part, error) {
	system, history, next, err := toGeminiChat(req.Messages)
	if err != nil {
		return nil, nil, err
	}

	modelName := req.Model
	if modelName == "" {
		modelName = p.defaultModel
	}
	model := p.client.GenerativeModel(modelName)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	chat := model.StartChat()
	chat.History = history
	return chat, next, nil
}

// toGeminiChat splits a transcript into the system instruction, the chat
// history and the parts of the final user turn. Gemini wants history to open
// with a user turn and alternate roles, so model turns ahead of the first
// user turn are dropped, consecutive turns of one role are merged, and
// unanswered user turns are sent along with the last message.
func toGeminiChat(messages []Message) (string, []*genai.Content, []genai.Part, error) {
	if len(messages) == 0 {
		return "", nil, nil, errors.New("no messages to send")
	}
	last := messages[len(messages)-1]
	if last.Role != openai.ChatMessageRoleUser {
		return "", nil, nil, fmt.Errorf("last message must come from the user, got %q", last.Role)
	}

	var system []string
	var history []*genai.Content
	for _, msg := range messages[:len(messages)-1] {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case openai.ChatMessageRoleSystem:
			system = append(system, msg.Content)
			continue
		case openai.ChatMessageRoleAssistant:
			if len(history) == 0 {
				continue
			}
			role = geminiModelRole
		}

		if n := len(history); n > 0 && history[n-1].Role == role {
			history[n-1].Parts = append(history[n-1].Parts, genai.Text(msg.Content))
			continue
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(msg.Content)}})
	}

	next := []genai.Part{genai.Text(last.Content)}
	if n := len(history); n > 0 && history[n-1].Role == openai.ChatMessageRoleUser {
		next = append(history[n-1].Parts, next...)
		history = history[:n-1]
	}
	return strings.Join(system, "\n\n"), history, next, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
