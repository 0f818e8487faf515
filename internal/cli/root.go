// Package cli implements the rpncalc command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rpncalc/internal/paths"
	"github.com/mesh-intelligence/rpncalc/pkg/rpncalc"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootOptions holds flag values shared by all subcommands and the settings
// resolved from them before any subcommand runs.
type rootOptions struct {
	configDir string
	dataDir   string
	verbose   bool

	settings settings
}

// NewRootCmd creates the top-level "rpncalc" command with global flags and
// all subcommands registered. Run without a subcommand it starts the
// calculator.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	calc := &calcOptions{root: o}

	root := &cobra.Command{
		Use:   "rpncalc",
		Short: "A Reverse Polish Notation calculator",
		Long: `rpncalc reads whitespace-separated tokens and evaluates them on an operand stack.

Numbers are pushed; + - * / pop two operands and push the result. A repeat count
before an operator applies it several times ("3+"), and 0 applies it until one
operand is left ("0*"). The words drop, clear and quit discard the top value,
empty the stack and end the session.`,
		Version:       rpncalc.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return calc.run(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.settings.log != nil {
				_ = o.settings.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/rpncalc)")
	pf.StringVar(&o.dataDir, "data-dir", "", "data directory for the journal and history (default: $XDG_DATA_HOME/rpncalc)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log diagnostics to stderr")

	calc.bindFlags(root)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(o))
	root.AddCommand(newHistoryCmd(o))
	root.AddCommand(newExportCmd(o))

	return root
}

// resolve locates the directories, loads config.yaml and builds the logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	o.settings.log = newLogger(o.verbose, cmd.ErrOrStderr())

	configDir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir, cmd)
	if err != nil {
		return userError(err)
	}

	s, err := settingsFrom(v)
	if err != nil {
		return userError(err)
	}

	dataDir, err := paths.ResolveDataDir(o.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	s.configDir = configDir
	s.dataDir = dataDir
	s.log = o.settings.log
	o.settings = s

	s.log.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("config_dir", s.configDir),
		zap.String("data_dir", s.dataDir),
		zap.Int("precision", s.precision),
		zap.Int("segment_capacity", s.segmentCapacity),
		zap.Bool("journal", s.journal),
		zap.Bool("history", s.history))
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

// run executes root and maps its error to an exit code.
func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "rpncalc:", err)
	return exitCode(err)
}

// cliError attaches an exit code to an error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cliError{code: exitSysError, err: err} }

// exitCode returns the code carried by err. Errors raised by cobra itself
// (unknown flags, bad arguments) are user errors.
func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
