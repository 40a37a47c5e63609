// SQL for the kv table.
package sqlite

// Schema DDL. Statements are idempotent so Attach can run them against an
// existing database.
const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxKVUpdated = `CREATE INDEX IF NOT EXISTS idx_kv_updated ON kv(updated_at);`
)

// schemaDDL lists all schema statements in execution order.
var schemaDDL = []string{
	createKV,
	idxKVUpdated,
}

const (
	selectValue = `SELECT value FROM kv WHERE key = ?`
	upsertValue = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)
