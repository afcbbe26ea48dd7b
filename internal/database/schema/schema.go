package schema

// SchemaSQL creates the key/value table that holds player saves
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv(updated_at);
`
