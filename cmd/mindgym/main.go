package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mindgym/internal/bootstrap"
	"mindgym/internal/platform/config"
)

type globalFlags struct {
	dataDir string
	logFile string
	debug   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "mindgym",
		Short:         "Timed cognitive mini-games in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", ".", "data directory holding mindgym.yaml and the run journal")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log at debug level")

	root.AddCommand(newPlayCmd(flags))
	root.AddCommand(newGamesCmd(flags))
	root.AddCommand(newPreviewCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	return root
}

func loadApp(flags *globalFlags, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.debug {
		cfg.Debug = true
	}
	return bootstrap.New(cfg, opts...)
}

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var game string
	var seed int64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the mindgym terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []bootstrap.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, bootstrap.WithSeed(seed))
			}
			app, err := loadApp(flags, opts...)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app, game)
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "game tab to open first")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed every session for a reproducible run")
	return cmd
}

func newGamesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the available games",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			games, err := app.GameCLI.Games(context.Background())
			if err != nil {
				return err
			}
			for _, g := range games {
				levels := "unlimited"
				if g.MaxLevel > 0 {
					levels = fmt.Sprint(g.MaxLevel)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tbudget=%s\tlevels=%s\tmemorize=%t\ton_wrong=%s\n",
					g.Game, g.Title, g.TimeBudget, levels, g.Memorize, g.OnWrong)
			}
			return nil
		},
	}
}

func newPreviewCmd(flags *globalFlags) *cobra.Command {
	var game string
	var level int
	var seed int64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the puzzle a seed produces at a level, with its solution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.GameCLI.Preview(context.Background(), game, level, seed)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "game=%s level=%d seed=%d\nparams: %s\n", out.Game, out.Level, out.Seed, out.Params)
			p := out.Puzzle
			switch {
			case p.Sequence != "":
				_, _ = fmt.Fprintf(w, "sequence: %s\n", p.Sequence)
			case len(p.Cubes) > 0:
				for i, c := range p.Cubes {
					_, _ = fmt.Fprintf(w, "cube %d: %s rotation=%d mirror=%t\n", i+1, symbols(c.Pattern), c.Rotation, c.Mirror)
				}
			case len(p.Pool) > 0:
				_, _ = fmt.Fprintf(w, "target %d with %s from %v\n", p.Target, p.Operator, p.Pool)
			case len(p.Tiles) > 0:
				for _, t := range p.Tiles {
					_, _ = fmt.Fprintf(w, "tile %d: %s %v\n", t.ID, t.Type, t.OpenEdges)
				}
			case len(p.Shapes) > 0:
				_, _ = fmt.Fprintf(w, "sequence: %s\n", symbols(p.Shapes))
			}
			_, _ = fmt.Fprintf(w, "solution: %s\n", out.Solution)
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "game to preview")
	cmd.Flags().IntVar(&level, "level", 1, "difficulty level")
	cmd.Flags().Int64Var(&seed, "seed", 1, "generator seed")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var game string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			runs, err := app.HistoryCLI.List(context.Background(), game, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs")
				return nil
			}
			for _, r := range runs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tscore=%d\tlevel=%d\treason=%s\tduration=%s\tseed=%d\n",
					r.EndedAt.Format(time.RFC3339), r.Game, r.Score, r.Level, r.EndReason, r.Duration.Round(time.Second), r.Seed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "only runs of this game")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}
