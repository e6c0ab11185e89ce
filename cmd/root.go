package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/byxorna/cafes/pkg/app"
	"github.com/byxorna/cafes/pkg/config"
	"github.com/byxorna/cafes/pkg/db/fs"
	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/runtime"
	"github.com/byxorna/cafes/pkg/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every command.
type globalFlags struct {
	ConfigFile string
}

func newRootCmd(clock filter.Clock) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "cafes",
		Short:         "Cafes finds a cafe that suits what you want to do",
		Args:          cobra.MaximumNArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigFile)
			if err != nil {
				return err
			}

			log, closer, err := runtime.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			// a bad data file stops us before the terminal is taken over
			store, err := fs.NewStore(cfg.Data)
			if err != nil {
				log.Error().Err(err).Str("data", cfg.Data).Msg("unable to load cafes")
				return err
			}
			log.Info().Str("source", store.Source()).Int("count", store.Count()).Msg("loaded cafes")

			m, err := app.New(cmd.Context(), cfg, store, log, app.WithClock(clock))
			if err != nil {
				return err
			}

			p := tea.NewProgram(*m, tea.WithAltScreen())
			err = p.Start()
			return err
		},
	}

	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "~/.cafes.yaml", "configuration file")
	root.AddCommand(newListCmd(flags, clock), newGeoJSONCmd(flags, clock))
	return root
}

func Execute() {
	err := newRootCmd(filter.SystemClock).ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle(err.Error()))
		os.Exit(1)
	}
}
