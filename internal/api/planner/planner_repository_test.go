package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

var itineraryColumns = []string{
	"id", "session_id", "destination", "duration", "trip_parameters", "source",
	"content", "was_completed", "issues", "days", "created_at",
}

func newMockRepo(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewRepository(pool, testLogger), pool
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRepositorySaveItinerary(t *testing.T) {
	repo, pool := newMockRepo(t)
	sessionID := uuid.New()
	it := types.StoredItinerary{
		ID:          uuid.New(),
		SessionID:   &sessionID,
		Destination: "东京",
		Duration:    2,
		Params:      tokyo(2),
		Source:      "offline",
		Content:     "# 东京2天旅行计划",
		CreatedAt:   time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	pool.ExpectExec("INSERT INTO itineraries").
		WithArgs(it.ID, it.SessionID, "东京", 2, mustJSON(t, it.Params), "offline",
			it.Content, false, []byte("[]"), []byte("[]"), it.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.SaveItinerary(context.Background(), it))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepositorySaveItineraryError(t *testing.T) {
	repo, pool := newMockRepo(t)
	pool.ExpectExec("INSERT INTO itineraries").WillReturnError(errors.New("connection lost"))

	err := repo.SaveItinerary(context.Background(), types.StoredItinerary{ID: uuid.New(), Destination: "东京", Duration: 1})

	assert.ErrorContains(t, err, "failed to insert itinerary")
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepositoryGetItinerary(t *testing.T) {
	repo, pool := newMockRepo(t)
	id := uuid.New()
	sessionID := uuid.New()
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	morning := "参观浅草寺"
	days := []types.ParsedDay{{DayNumber: 1, Transport: &morning}}

	pool.ExpectQuery("FROM itineraries\\s+WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(itineraryColumns).AddRow(
			id, &sessionID, "东京", 1, mustJSON(t, tokyo(1)), "deepseek-api",
			"# 东京1天旅行计划", true, []byte(`["Missing day 1 itinerary"]`), mustJSON(t, days), created,
		))

	got, err := repo.GetItinerary(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	require.NotNil(t, got.SessionID)
	assert.Equal(t, sessionID, *got.SessionID)
	assert.Equal(t, "东京", got.Params.Destination)
	assert.Equal(t, []string{"Missing day 1 itinerary"}, got.Issues)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "参观浅草寺", *got.Days[0].Transport)
	assert.True(t, got.WasCompleted)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepositoryGetItineraryNotFound(t *testing.T) {
	repo, pool := newMockRepo(t)
	id := uuid.New()
	pool.ExpectQuery("FROM itineraries").WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetItinerary(context.Background(), id)

	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRepositoryListItineraries(t *testing.T) {
	repo, pool := newMockRepo(t)
	sessionID := uuid.New()
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	pool.ExpectQuery("SELECT COUNT\\(\\*\\) FROM itineraries").
		WithArgs(&sessionID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	pool.ExpectQuery("ORDER BY created_at DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs(&sessionID, 2, 2).
		WillReturnRows(pgxmock.NewRows(itineraryColumns).AddRow(
			uuid.New(), &sessionID, "巴黎", 2, mustJSON(t, types.TripParameters{Destination: "巴黎", Duration: 2}), "offline",
			"# 巴黎2天旅行计划", false, []byte("[]"), []byte("[]"), created,
		))

	items, total, err := repo.ListItineraries(context.Background(), &sessionID, 2, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "巴黎", items[0].Destination)
	assert.Empty(t, items[0].Issues)
	assert.NoError(t, pool.ExpectationsWereMet())
}
