package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// Export writes every journal entry to path as JSONL, one entry per line,
// ordered by session start and then by sequence. The file is replaced
// atomically.
func (b *Backend) Export(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrJournalDetached
	}

	rows, err := b.db.Query(`SELECT e.entry_id, e.session_id, e.seq, e.line, e.outcome, e.error, e.stack, e.created_at
		FROM entries e JOIN sessions s ON s.session_id = e.session_id
		ORDER BY s.started_at, s.session_id, e.seq`)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	entries, err := scanEntries(rows)
	rows.Close()
	if err != nil {
		return err
	}

	records := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		rec, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", e.EntryID, err)
		}
		records = append(records, rec)
	}
	return writeJSONL(path, records)
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
