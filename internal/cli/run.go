package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rpncalc/internal/paths"
	"github.com/mesh-intelligence/rpncalc/internal/session"
	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
	"github.com/mesh-intelligence/rpncalc/pkg/sqlite"
	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// calcOptions holds the flags of the calculator itself.
type calcOptions struct {
	root   *rootOptions
	batch  bool
	resume bool
}

func (c *calcOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&c.batch, "batch", "b", false, "batch mode: no prompt, print the stack once at end of input")
	f.BoolVar(&c.resume, "resume", false, "start from the stack left by the last journaled line")
	f.Int("precision", session.DefaultPrecision, "decimal places printed per value")
	f.Int("segment-capacity", rpn.DefaultSegmentCapacity, "values per stack segment")
	f.Bool("journal", false, "record every line in the journal")
	f.Bool("history", true, "keep interactive line history in the data directory")
}

// run evaluates standard input until it ends or a line says quit.
func (c *calcOptions) run(cmd *cobra.Command) error {
	st := c.root.settings
	cfg := session.Config{
		Interactive:     !c.batch,
		Precision:       st.precision,
		SegmentCapacity: st.segmentCapacity,
		Logger:          st.log,
	}

	if st.journal || c.resume {
		j, err := openJournal(st)
		if err != nil {
			return sysError(err)
		}
		defer func() {
			if err := j.Detach(); err != nil {
				st.log.Warn("journal detach failed", zap.Error(err))
			}
		}()

		if st.journal {
			cfg.Journal = j
		}
		if c.resume {
			snap, ok, err := j.LastSnapshot()
			if err != nil {
				return sysError(fmt.Errorf("resume: %w", err))
			}
			if ok {
				cfg.Resume = snap
			}
		}
	}

	reader, err := newReader(cmd, cfg.Interactive, st)
	if err != nil {
		return sysError(err)
	}

	s := session.New(cmd.OutOrStdout(), cfg)
	runErr := s.Run(cmd.Context(), reader)
	if err := reader.Close(); err != nil {
		st.log.Warn("closing reader", zap.Error(err))
	}
	if runErr != nil {
		return sysError(runErr)
	}
	return nil
}

// openJournal attaches the SQLite journal in the data directory.
func openJournal(st settings) (types.Journal, error) {
	j := sqlite.NewBackend()
	err := j.Attach(types.Config{Backend: types.BackendSQLite, DataDir: st.dataDir})
	if err != nil {
		return nil, fmt.Errorf("attach journal: %w", err)
	}
	st.log.Debug("journal attached", zap.String("data_dir", st.dataDir))
	return j, nil
}

// newReader returns a line-editing reader when an interactive session reads
// from a terminal, and a plain scanner over the command's input otherwise.
func newReader(cmd *cobra.Command, interactive bool, st settings) (session.LineReader, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && interactive && isTerminal(f) {
		historyPath := ""
		if st.history {
			if err := os.MkdirAll(st.dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			historyPath = paths.HistoryFile(st.dataDir)
		}
		st.log.Debug("using terminal line editor", zap.String("history", historyPath))
		return session.NewLinerReader(historyPath)
	}
	return session.NewScannerReader(in, cmd.OutOrStdout()), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
