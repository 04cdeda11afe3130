package store

type migration struct {
	Version int
	Name    string
	SQL     string
}

// Упорядоченный список миграций. Менять уже выпущенные нельзя, только добавлять.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create events",
		SQL: `
			CREATE TABLE events (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id  TEXT NOT NULL,
				kind        TEXT NOT NULL,
				agent_id    INTEGER NOT NULL,
				frame       INTEGER NOT NULL,
				x           REAL NOT NULL,
				y           REAL NOT NULL,
				at          TEXT NOT NULL
			);

			CREATE INDEX idx_events_kind ON events (kind);
			CREATE INDEX idx_events_session ON events (session_id);
		`,
	},
}
