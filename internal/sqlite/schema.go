package sqlite

// Schema DDL for all tables.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    started_at TEXT NOT NULL
);`

	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    entry_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    line TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT,
    stack TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxEntriesSession    = `CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_session_seq ON entries(session_id, seq);`
	idxSessionsStartedAt = `CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSessions,
	createEntries,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesSession,
	idxSessionsStartedAt,
}
