package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/stickies/internal/config"
	"github.com/balkashynov/stickies/internal/db"
	"github.com/balkashynov/stickies/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stickies",
	Short: "Terminal sticky notes, goals and pomodoros",
	Long: `stickies keeps short-term and long-term tasks on a sticky-note board,
tracks learning time with a pomodoro timer and asks an AI model for a plan.`,
	SilenceUsage: true,
}

// app bundles what a command needs once configuration is loaded
type app struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	store  *db.Store
	closer func()
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warnw("failed to close store", "error", err)
		}
	}
	a.closer()
}

// loadApp reads configuration, builds the logger and opens the store
func loadApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.Database.Path, db.WithLogger(logger.Named("db")))
	if err != nil {
		closer()
		return nil, err
	}

	return &app{cfg: cfg, log: logger, store: store, closer: closer}, nil
}

// withApp wraps a command so it runs with a loaded app and reports errors
// the same way everywhere
func withApp(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := loadApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.Close()

		if err := fn(cmd.Context(), a, cmd, args); err != nil {
			a.log.Debugw("command failed", "command", cmd.CommandPath(), "error", err)
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// parseID parses a task id argument
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task ID '%s'", arg)
	}
	return uint(id), nil
}

// parseIDs parses every argument as a task id, failing on the first bad one
func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stickies %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.stickies/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completedCmd)
	rootCmd.AddCommand(childrenCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
