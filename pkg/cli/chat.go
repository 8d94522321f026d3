package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/usecase/chat"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var exitWords = map[string]struct{}{
	"exit":    {},
	"quit":    {},
	"bye":     {},
	"goodbye": {},
}

// lineReader is the part of readline the loop depends on
type lineReader interface {
	Readline() (string, error)
}

func chatCommand() *cli.Command {
	var cfg config

	var flags []cli.Flag
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)
	flags = append(flags, terminalFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Start an interactive conversation",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := cfg.newLogger(c.Root().ErrWriter)
			ctx = logging.With(ctx, logger)

			session, err := cfg.newSession(ctx, cfg.newProgress(c.Root().ErrWriter))
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "You: ",
				HistoryFile:     cfg.historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return goerr.Wrap(err, "failed to initialize terminal")
			}
			defer rl.Close()

			w := c.Root().Writer
			fmt.Fprintf(w, "%s v%s is now online and ready to assist you.\n", session.Persona().Name, session.Persona().Version)
			fmt.Fprintf(w, "Type 'exit' or 'quit' to end the conversation.\n")

			runLoop(ctx, session, rl, w)
			return nil
		},
	}
}

// runLoop reads utterances until an exit word, EOF or interrupt, then
// persists the session
func runLoop(ctx context.Context, session *chat.Session, r lineReader, w io.Writer) {
	name := session.Persona().Name
	defer session.Shutdown(ctx)

	for {
		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintf(w, "\nConversation interrupted.\n")
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintf(w, "\n%s: Goodbye! It was nice talking with you.\n", name)
			return
		}
		if err != nil {
			logging.From(ctx).Error("failed to read input", "error", err)
			return
		}

		input := strings.TrimSpace(line)
		if _, ok := exitWords[strings.ToLower(input)]; ok {
			fmt.Fprintf(w, "\n%s: Goodbye! It was nice talking with you.\n", name)
			return
		}

		if handled := runSlashCommand(session, input, w); handled {
			continue
		}

		reply := session.ProcessTurn(ctx, line)
		fmt.Fprintf(w, "\n%s: %s\n\n", name, reply)
	}
}

// runSlashCommand prints session internals; it never changes session state
func runSlashCommand(session *chat.Session, input string, w io.Writer) bool {
	switch input {
	case "/context":
		cc := session.Context()
		fmt.Fprintf(w, "topic: %s\nsentiment: %s\nentities: %s\nrecent queries: %s\n",
			cc.Topic, cc.Sentiment, strings.Join(cc.Entities, ", "), strings.Join(cc.RecentQueries, ", "))
	case "/patterns":
		for _, e := range session.TopPatterns(5) {
			fmt.Fprintf(w, "%4d  %s\n", e.Count, e.NGram)
		}
	case "/history":
		fmt.Fprintf(w, "%d turns this session\n", len(session.History()))
	default:
		return false
	}
	return true
}
