package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cookie/cookie"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "cookie.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(d int) cookie.Date {
	return cookie.Date{Year: 2024, Month: time.January, Day: d}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "cookie.db")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	require.NoError(t, s.Close())

	// Reopening keeps the schema
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := Key{GuildID: 10, UserID: 20, Kind: KindMessages}

	// Saved out of order, loaded by day
	series := cookie.NewDateSeries()
	series.Set(day(3), 30)
	series.Set(day(1), 10)
	series.Set(day(2), 20)

	n, err := s.SaveSeries(ctx, key, series)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	loaded, err := s.LoadSeries(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []cookie.Date{day(1), day(2), day(3)}, loaded.Dates())
	assert.Equal(t, []int64{10, 20, 30}, loaded.Counts())

	t.Run("upsert overwrites and extends", func(t *testing.T) {
		update := cookie.NewDateSeries()
		update.Set(day(3), 33)
		update.Set(day(4), 40)

		n, err := s.SaveSeries(ctx, key, update)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		loaded, err := s.LoadSeries(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 20, 33, 40}, loaded.Counts())
	})

	t.Run("keys are isolated", func(t *testing.T) {
		other, err := s.LoadSeries(ctx, Key{GuildID: 10, UserID: 20, Kind: KindVoice})
		require.NoError(t, err)
		assert.Equal(t, 0, other.Len())

		other, err = s.LoadSeries(ctx, Key{GuildID: 11, UserID: 20, Kind: KindMessages})
		require.NoError(t, err)
		assert.Equal(t, 0, other.Len())
	})

	t.Run("empty series", func(t *testing.T) {
		n, err := s.SaveSeries(ctx, Key{GuildID: 10, Kind: KindMembers}, cookie.NewDateSeries())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestKinds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	series := cookie.NewDateSeries()
	series.Set(day(1), 1)

	for _, key := range []Key{
		{GuildID: 1, UserID: 5, Kind: KindVoice},
		{GuildID: 1, UserID: 0, Kind: KindMembers},
		{GuildID: 1, UserID: 0, Kind: KindMessages},
		{GuildID: 2, UserID: 0, Kind: KindMessages},
	} {
		_, err := s.SaveSeries(ctx, key, series)
		require.NoError(t, err)
	}

	keys, err := s.Kinds(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []Key{
		{GuildID: 1, UserID: 0, Kind: KindMembers},
		{GuildID: 1, UserID: 0, Kind: KindMessages},
		{GuildID: 1, UserID: 5, Kind: KindVoice},
	}, keys)

	keys, err = s.Kinds(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFetchedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 7200)) }

	series := cookie.NewDateSeries()
	series.Set(day(1), 1)
	_, err := s.SaveSeries(ctx, Key{GuildID: 1, Kind: KindMembers}, series)
	require.NoError(t, err)

	var fetchedAt string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT fetched_at FROM series`).Scan(&fetchedAt))
	assert.Equal(t, "2024-05-01T10:00:00Z", fetchedAt)
}
