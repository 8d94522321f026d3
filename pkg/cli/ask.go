package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var cfg config

	var flags []cli.Flag
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Answer a single utterance and exit",
		ArgsUsage: "<text>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return goerr.New("text is required")
			}

			logger := cfg.newLogger(c.Root().ErrWriter)
			ctx = logging.With(ctx, logger)

			session, err := cfg.newSession(ctx, adapter.NopProgress())
			if err != nil {
				return err
			}
			defer session.Shutdown(ctx)

			fmt.Fprintln(c.Root().Writer, session.ProcessTurn(ctx, text))
			return nil
		},
	}
}
