package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/votebox"
	"github.com/bft-labs/votebox/internal/adapters/fs"
	logAdapter "github.com/bft-labs/votebox/internal/adapters/log"
	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/cli"
	"github.com/bft-labs/votebox/internal/cliconfig"
	"github.com/bft-labs/votebox/internal/transport/httpapi"
)

const longHelp = `A voting machine: one ballot per voter, a fixed candidate list, and a
running tally of candidate, blank and invalid votes.

The tally lives in memory (--storage volatile) or in a JSON file
(--storage durable) that survives restarts. Configure via file, env, or flags.

Without a subcommand votebox starts an interactive session on the terminal.`

var exampleUsage = strings.TrimSpace(`
  votebox --candidates Alice,Bob
  votebox --candidates Alice,Bob --storage durable --lang fr
  votebox cast Claude Alice --storage durable
  votebox serve --config $HOME/.votebox/config.toml --listen :8080
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// runtimeEnv is what every command needs once configuration is resolved.
type runtimeEnv struct {
	cfg     cliconfig.Config
	lex     cli.Lexicon
	log     zerolog.Logger
	machine *app.Controller
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.NewLogger(cfg.LogLevel)

	// setup resolves configuration for cmd and opens the voting machine.
	setup := func(cmd *cobra.Command) (*runtimeEnv, error) {
		// Determine config path
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		// Build set of changed flags
		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
			cliconfig.ApplyFileConfig(&cfg, fc, changed)
		}

		// Apply environment variables (VOTEBOX_*)
		// These override file config but are overridden by flags (checked via changed map)
		cliconfig.ApplyEnvConfig(&cfg, changed)

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		log = cliconfig.NewLogger(cfg.LogLevel)
		log.Debug().Interface("config", cfg).Msg("configuration")

		lex, _ := cli.ForLanguage(cfg.Language)

		machine, err := votebox.Open(cmd.Context(), votebox.Config{
			Candidates: cfg.Candidates,
			Storage:    votebox.StorageKind(cfg.Storage),
			Path:       cfg.StoragePath,
		}, votebox.WithLogger(logAdapter.NewZerologAdapter(log)))
		if err != nil {
			return nil, fmt.Errorf("open voting machine: %w", err)
		}
		return &runtimeEnv{cfg: cfg, lex: lex, log: log, machine: machine}, nil
	}

	root := &cobra.Command{
		Use:           "votebox",
		Short:         "Record one ballot per voter and keep a running tally",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			return cli.NewSession(env.machine, env.lex, os.Stdin, os.Stdout).Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.votebox/config.toml)")
	root.PersistentFlags().StringSliceVar(&cfg.Candidates, "candidates", cfg.Candidates, "comma-separated candidate list")
	root.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "tally storage: volatile or durable")
	root.PersistentFlags().StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "tally file for durable storage")
	root.PersistentFlags().StringVar(&cfg.Language, "lang", cfg.Language, "front-end language: en or fr")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newCastCmd(setup),
		newScoreCmd(setup),
		newVotersCmd(setup),
		newWatchCmd(setup),
		newServeCmd(setup, &cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("votebox")
		stop()
		os.Exit(1)
	}
}

type setupFunc func(cmd *cobra.Command) (*runtimeEnv, error)

func newCastCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "cast <voter> [candidate]",
		Short: "Cast one ballot; omit the candidate for a blank vote",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter := strings.TrimSpace(args[0])
			if voter == "" {
				return fmt.Errorf("voter name is required")
			}
			var candidate string
			if len(args) == 2 {
				candidate = strings.TrimSpace(args[1])
			}
			if !utf8.ValidString(voter) || !utf8.ValidString(candidate) {
				return fmt.Errorf("voter and candidate must be valid UTF-8")
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			out, err := env.machine.CastVote(cmd.Context(), app.VoteRequest{Voter: voter, Candidate: candidate})
			if err != nil {
				return err
			}
			cli.RenderOutcome(cmd.OutOrStdout(), env.lex, out)
			return nil
		},
	}
}

func newScoreCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Print the scoreboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := env.machine.ReadState(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderScoreboard(cmd.OutOrStdout(), env.lex, st)
			return nil
		},
	}
}

func newVotersCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "voters",
		Short: "Print the attendance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := env.machine.ReadState(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderVoters(cmd.OutOrStdout(), env.lex, st)
			return nil
		},
	}
}

func newWatchCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reprint the scoreboard whenever the tally file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			if env.cfg.Storage != cliconfig.StorageDurable {
				return fmt.Errorf("watch requires --storage %s", cliconfig.StorageDurable)
			}

			ctx := cmd.Context()
			printer := cli.NewScoreboardPrinter(env.machine, env.lex, cmd.OutOrStdout())
			render := func() {
				if err := printer.Print(ctx); err != nil {
					env.log.Error().Err(err).Msg("read tally")
				}
			}

			render()
			w := fs.NewWatcher(env.cfg.StoragePath, fs.DefaultDebounce, logAdapter.NewZerologAdapter(env.log))
			return w.Run(ctx, render)
		},
	}
}

func newServeCmd(setup setupFunc, cfg *cliconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the voting API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			srv := httpapi.NewServer(env.machine, logAdapter.NewZerologAdapter(env.log))
			return srv.ListenAndServe(cmd.Context(), env.cfg.ListenAddr)
		},
	}
	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	return cmd
}
