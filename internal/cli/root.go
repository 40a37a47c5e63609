// Package cli implements the topics command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/internal/logging"
	"github.com/mesh-intelligence/topics/internal/opener"
	"github.com/mesh-intelligence/topics/internal/paths"
	release "github.com/mesh-intelligence/topics/pkg/topics"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags       rootFlags
	opener      opener.Opener
	config      *viper.Viper
	configDir   string
	logger      *zap.Logger
	fixedLogger *zap.Logger
}

// Option configures the root command.
type Option func(*app)

// WithOpener replaces the system URL opener used by "open".
func WithOpener(o opener.Opener) Option {
	return func(a *app) {
		a.opener = o
	}
}

// WithLogger makes every command log to logger instead of the one built
// from log_level and --verbose.
func WithLogger(logger *zap.Logger) Option {
	return func(a *app) {
		a.fixedLogger = logger
	}
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input (exit code 1).
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure (exit code 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors raised by cobra itself (unknown flags, bad arguments) are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "topics" command with global flags
// and all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		opener: opener.NewSystem(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "topics",
		Short: "A local catalog of reference links grouped by topic",
		Long: `Topics keeps an ordered list of reference links for each technology topic.
Every change is saved to local storage and restored on the next run.`,
		Version:       release.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newAddTopicCmd(a),
		newAddLinkCmd(a),
		newOpenCmd(a),
		newThemeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	return root
}

// skipsSetup reports whether cmd runs without loading configuration, so it
// never creates the config directory or config.yaml.
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "topics:", err)
		return ExitCode(err)
	}
	return exitSuccess
}

// setup resolves the config directory, loads config.yaml and builds the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	logger := a.fixedLogger
	if logger == nil {
		logger, err = logging.New(cfg.GetString(cfgKeyLogLevel), a.flags.verbose)
		if err != nil {
			return userError(err)
		}
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("backend", cfg.GetString(cfgKeyBackend)))
	return nil
}
