package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "history [SESSION_ID]",
		Short: "List journaled sessions, or the lines of one session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(o.settings)
			if err != nil {
				return sysError(err)
			}
			defer func() {
				if err := j.Detach(); err != nil {
					o.settings.log.Warn("journal detach failed", zap.Error(err))
				}
			}()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				sessions, err := j.Sessions()
				if err != nil {
					return sysError(err)
				}
				if jsonOut {
					return writeJSON(out, sessions)
				}
				return printSessions(out, sessions)
			}

			entries, err := j.Entries(args[0])
			if errors.Is(err, types.ErrSessionNotFound) {
				return userError(fmt.Errorf("session %s: %w", args[0], err))
			}
			if err != nil {
				return sysError(err)
			}
			if jsonOut {
				return writeJSON(out, entries)
			}
			return printEntries(out, entries)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSessions(w io.Writer, sessions []types.Session) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tMODE\tSTARTED\tLINES")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			s.SessionID, s.Mode, s.StartedAt.Local().Format(time.DateTime), s.Entries)
	}
	return tw.Flush()
}

func printEntries(w io.Writer, entries []types.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tOUTCOME\tLINE\tSTACK")
	for _, e := range entries {
		outcome := e.Outcome
		if e.Error != "" {
			outcome += " (" + e.Error + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Seq, outcome, e.Line, formatStack(e.Stack))
	}
	return tw.Flush()
}

// formatStack renders a snapshot compactly on one line, bottom first.
func formatStack(stack []float64) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
