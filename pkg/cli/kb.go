package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func kbCommand() *cli.Command {
	var cfg config

	var flags []cli.Flag
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, sessionFlags(&cfg)...)

	return &cli.Command{
		Name:  "kb",
		Usage: "Print the stored knowledge base",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, cfg.newLogger(c.Root().ErrWriter))

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			kb, found, err := repo.Load(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load knowledge base")
			}
			if !found {
				fmt.Fprintf(c.Root().Writer, "No knowledge base stored at %s\n", cfg.kbPath)
				return nil
			}

			data, err := yaml.Marshal(kb)
			if err != nil {
				return goerr.Wrap(err, "failed to marshal knowledge base")
			}
			fmt.Fprint(c.Root().Writer, string(data))
			return nil
		},
	}
}
