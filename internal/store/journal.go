package store

import (
	"context"
	"fmt"
	"time"

	"wander-server/internal/domain"
	"wander-server/pkg/utils"

	"github.com/paulmach/orb"
)

// Entry - событие, прочитанное из журнала
type Entry struct {
	ID      int64
	Session string
	Event   domain.Event
}

// Stats - сводка по журналу
type Stats struct {
	Total    int            `json:"total"`
	Sessions int            `json:"sessions"`
	ByKind   map[string]int `json:"by_kind"`
}

// Journal пишет события жизненного цикла в таблицу events.
// Каждый экземпляр - отдельная сессия со своим ID.
type Journal struct {
	db      *DB
	session string
}

func NewJournal(db *DB) *Journal {
	return &Journal{db: db, session: utils.GenerateID()}
}

// Session ID текущей сессии
func (j *Journal) Session() string {
	return j.session
}

// Append пишет пачку событий в одной транзакции
func (j *Journal) Append(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (session_id, kind, agent_id, frame, x, y, at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		at := ev.At
		if at.IsZero() {
			at = time.Now()
		}
		if _, err := stmt.ExecContext(ctx,
			j.session, ev.Type.String(), int64(ev.AgentID), int64(ev.Frame),
			ev.Pos.X(), ev.Pos.Y(), at.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Recent возвращает последние limit событий, от старых к новым
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.sql.QueryContext(ctx, `
		SELECT id, session_id, kind, agent_id, frame, x, y, at FROM (
			SELECT * FROM events ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			kind, at  string
			agent, fr int64
			x, y      float64
		)
		if err := rows.Scan(&e.ID, &e.Session, &kind, &agent, &fr, &x, &y, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Event = domain.Event{
			Type:    domain.ParseEvent(kind),
			AgentID: domain.AgentID(agent),
			Frame:   uint64(fr),
			Pos:     orb.Point{x, y},
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.Event.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats считает события по типам за все сессии
func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByKind: make(map[string]int)}

	rows, err := j.db.sql.QueryContext(ctx, `SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return st, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return st, fmt.Errorf("scan stats: %w", err)
		}
		st.ByKind[kind] = n
		st.Total += n
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	if err := j.db.sql.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM events`).Scan(&st.Sessions); err != nil {
		return st, fmt.Errorf("count sessions: %w", err)
	}
	return st, nil
}
