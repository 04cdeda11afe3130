package store

import (
	"context"
	"testing"
	"time"

	"wander-server/internal/domain"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.migrate())

	var count int
	require.NoError(t, db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestJournal_AppendRecent(t *testing.T) {
	j := NewJournal(testDB(t))
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(ctx, []domain.Event{
		{Type: domain.EventAdmitted, AgentID: 6, Frame: 10, Pos: orb.Point{660, 200}, At: at},
		{Type: domain.EventMarkedLeaving, AgentID: 2, Frame: 10, Pos: orb.Point{100, 120}, At: at},
	}))
	require.NoError(t, j.Append(ctx, []domain.Event{
		{Type: domain.EventExited, AgentID: 2, Frame: 95, Pos: orb.Point{688, 299}, At: at},
	}))
	require.NoError(t, j.Append(ctx, nil))

	all, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.EventAdmitted, all[0].Event.Type)
	assert.Equal(t, domain.AgentID(6), all[0].Event.AgentID)
	assert.Equal(t, orb.Point{660, 200}, all[0].Event.Pos)
	assert.True(t, at.Equal(all[0].Event.At))
	assert.Equal(t, j.Session(), all[0].Session)
	assert.Equal(t, domain.EventExited, all[2].Event.Type)

	last, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, uint64(95), last[0].Event.Frame)
}

func TestJournal_Stats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	first := NewJournal(db)
	second := NewJournal(db)
	require.NotEqual(t, first.Session(), second.Session())

	require.NoError(t, first.Append(ctx, []domain.Event{
		{Type: domain.EventAdmitted, AgentID: 6},
		{Type: domain.EventAdmitted, AgentID: 7},
	}))
	require.NoError(t, second.Append(ctx, []domain.Event{
		{Type: domain.EventExited, AgentID: 6},
	}))

	st, err := first.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Sessions)
	assert.Equal(t, 2, st.ByKind["ADMITTED"])
	assert.Equal(t, 1, st.ByKind["EXITED"])
}

func TestJournal_StatsEmpty(t *testing.T) {
	st, err := NewJournal(testDB(t)).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Total)
	assert.Empty(t, st.ByKind)
}
