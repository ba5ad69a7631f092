package punch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func TestFileRepository_AppendAndFind(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	e := &ClockEvent{
		ID:        uuid.New(),
		UserID:    uid,
		Username:  "alice",
		Action:    ActionStartDay,
		Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Date:      "2026-03-10",
	}
	require.NoError(t, repo.Append(ctx, e))

	found, err := repo.FindByUserAndDate(ctx, uid.String(), "2026-03-10")
	assert.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, e.ID, found[0].ID)
	assert.Equal(t, ActionStartDay, found[0].Action)

	none, err := repo.FindByUserAndDate(ctx, uid.String(), "2026-03-11")
	assert.NoError(t, err)
	assert.Empty(t, none)

	other, err := repo.FindByUserAndDate(ctx, uuid.New().String(), "2026-03-10")
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestFileRepository_FindByUserRange(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	for _, date := range []string{"2026-01-15", "2026-02-15", "2026-03-15"} {
		ts, _ := time.Parse(DateLayout, date)
		require.NoError(t, repo.Append(ctx, &ClockEvent{
			ID:        uuid.New(),
			UserID:    uid,
			Action:    ActionStartDay,
			Timestamp: ts,
			Date:      date,
		}))
	}

	all, err := repo.FindByUser(ctx, uid.String(), "", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	feb, err := repo.FindByUser(ctx, uid.String(), "2026-02-01", "2026-02-28")
	assert.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "2026-02-15", feb[0].Date)
}

func TestFileRepository_FindByMonth(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	for _, date := range []string{"2026-03-01", "2026-03-31", "2026-04-01"} {
		ts, _ := time.Parse(DateLayout, date)
		require.NoError(t, repo.Append(ctx, &ClockEvent{
			ID:        uuid.New(),
			UserID:    uid,
			Action:    ActionStartDay,
			Timestamp: ts,
			Date:      date,
		}))
	}

	march, err := repo.FindByMonth(ctx, 2026, time.March)
	assert.NoError(t, err)
	assert.Len(t, march, 2)
}

func TestFileRepository_ArchiveYear(t *testing.T) {
	repo, dir := newFileRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	for _, date := range []string{"2025-06-01", "2025-12-31", "2026-01-02"} {
		ts, _ := time.Parse(DateLayout, date)
		require.NoError(t, repo.Append(ctx, &ClockEvent{
			ID:        uuid.New(),
			UserID:    uid,
			Action:    ActionStartDay,
			Timestamp: ts,
			Date:      date,
		}))
	}

	archived, err := repo.ArchiveYear(ctx, 2025)
	assert.NoError(t, err)
	assert.Len(t, archived, 2)

	// The live log keeps only the other year.
	remaining, err := repo.FindByUser(ctx, uid.String(), "", "")
	assert.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2026-01-02", remaining[0].Date)

	// The archive file exists and reads back.
	fromArchive, err := repo.FindArchivedYear(ctx, 2025)
	assert.NoError(t, err)
	assert.Len(t, fromArchive, 2)
	_, statErr := os.Stat(filepath.Join(dir, "archives", "punches_2025.json"))
	assert.NoError(t, statErr)

	// Archiving a year with no events is a no-op.
	none, err := repo.ArchiveYear(ctx, 2020)
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileRepository_CorruptFileBackedUp(t *testing.T) {
	repo, dir := newFileRepo(t)
	ctx := context.Background()

	path := filepath.Join(dir, "punches.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.FindByDate(ctx, "2026-03-10")
	assert.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr)
}
