package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS community (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS member (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    community_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    contribution_percentage INTEGER NOT NULL
        CHECK (contribution_percentage BETWEEN 0 AND 100),
    created_at INTEGER NOT NULL,
    FOREIGN KEY (community_id) REFERENCES community(id)
);

CREATE TABLE IF NOT EXISTS income (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    reason TEXT NOT NULL,
    amount TEXT NOT NULL,
    contribution_percentage INTEGER NOT NULL
        CHECK (contribution_percentage BETWEEN 0 AND 100),
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES member(id)
);

CREATE TABLE IF NOT EXISTS expense (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    reason TEXT NOT NULL,
    amount TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES member(id)
);

CREATE INDEX IF NOT EXISTS idx_member_community_id ON member(community_id);
CREATE INDEX IF NOT EXISTS idx_income_owner_date ON income(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_expense_owner_date ON expense(owner_id, date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
