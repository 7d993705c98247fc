package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bridge line by line",
		Long:  "Read messages from stdin as the console user. Lines starting with ¿ run code, ¿¿name runs a stored command, and other lines answer pending prompts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.chat(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// chat publishes every line as a platform message. Lines no waiting script
// consumes go to the router; each execution runs on its own goroutine so
// later lines can answer its prompts.
func (a *app) chat(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var wg sync.WaitGroup
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		sc := a.session(line)
		msg := a.platform.Record(sc.Message())
		sc.MessageID = msg.ID

		ev := domain.Event{
			Type:     domain.EventMessageCreated,
			Platform: sc.Platform,
			SelfID:   sc.SelfID,
			IsDirect: sc.IsDirect,
			Message:  msg,
		}
		if id, err := a.identities.Lookup(ctx, sc.Platform, sc.UserID); err == nil {
			ev.Identity = &id
		}
		if a.hub.Publish(ctx, ev) {
			continue
		}

		wg.Add(1)
		go func(sc domain.SessionContext) {
			defer wg.Done()

			fragments, handled := a.router.Handle(ctx, sc)
			if !handled {
				return
			}
			if err := a.deliver(ctx, sc.ChannelID, fragments); err != nil {
				a.logger.Warn("chat_deliver_failed", "channel_id", sc.ChannelID, "error", err)
			}
		}(sc)
	}

	wg.Wait()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat input: %w", err)
	}
	return nil
}
