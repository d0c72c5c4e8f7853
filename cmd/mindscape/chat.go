package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mindscape/be/internal/logger"
	"mindscape/be/internal/stream"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant, streaming each reply as it arrives",
	Long: `chat reads one message per line and prints the assistant's reply while it
is being generated. Press Ctrl-C during a reply to stop it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(
			logger.WithPretty(true),
			logger.WithDebug(verbose),
			logger.WithWriter(cmd.ErrOrStderr()),
		)

		token, err := loadToken(viper.GetString("token_file"))
		if err != nil {
			return err
		}
		client := stream.NewClient(serverURL("/v1/chat/completions"),
			stream.WithTokenSource(stream.StaticToken(token)),
			stream.WithModel(viper.GetString("model")),
			stream.WithLogger(log),
		)

		in := io.Reader(cmd.InOrStdin())
		if message, _ := cmd.Flags().GetString("message"); message != "" {
			in = strings.NewReader(message + "\n")
		}
		return newChatSession(client, log).run(cmd.Context(), in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("message", "m", "", "send a single message and exit")
}

type opener interface {
	Open(ctx context.Context, history []stream.Message, next stream.Message) (*stream.Stream, error)
}

type chatSession struct {
	client  opener
	logger  *slog.Logger
	history []stream.Message
	// interrupt derives the context of one reply. It is swapped in tests.
	interrupt func(context.Context) (context.Context, context.CancelFunc)
}

func newChatSession(client opener, logger *slog.Logger) *chatSession {
	return &chatSession{
		client: client,
		logger: logger,
		interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

func (c *chatSession) run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := c.turn(ctx, line, out); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// turn sends one message. Only start failures end the session; a cancelled
// or interrupted reply is reported and dropped from the history.
func (c *chatSession) turn(ctx context.Context, line string, out io.Writer) error {
	next := stream.Message{Role: stream.RoleUser, Content: line}

	replyCtx, stop := c.interrupt(ctx)
	defer stop()

	s, err := c.client.Open(replyCtx, c.history, next)
	if err != nil {
		return err
	}
	defer s.Close()

	for fragment, err := range s.All() {
		if err != nil {
			fmt.Fprintln(out)
			var interrupted *stream.TransportInterruptedError
			switch {
			case errors.Is(err, context.Canceled):
				c.logger.Info("reply cancelled")
			case errors.As(err, &interrupted):
				c.logger.Warn("reply interrupted", "error", interrupted.Err)
			default:
				c.logger.Error("reply failed", "error", err)
			}
			return nil
		}
		fmt.Fprint(out, fragment)
	}
	fmt.Fprintln(out)

	if !s.Done() {
		c.logger.Debug("reply ended without end marker")
	}
	c.history = append(c.history, next, stream.Message{Role: stream.RoleAssistant, Content: s.Text()})
	return nil
}
