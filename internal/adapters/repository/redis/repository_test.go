package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/turfvote/internal/core/domain"
)

func sampleEvent(created time.Time) *domain.Event {
	return &domain.Event{
		ID:    uuid.New(),
		Name:  "Friday Badminton",
		Sport: domain.SportBadminton,
		Date:  "2026-10-23",
		Options: []domain.Option{
			{ID: uuid.New(), TurfName: "Court 1", StartTime: "19:00", EndTime: "20:00", MinPlayers: 2, MaxPlayers: 4},
		},
		Votes:     []domain.Vote{},
		Status:    domain.StatusActive,
		CreatedAt: created,
	}
}

func TestEventRepository_Save(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := sampleEvent(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC))
	doc, err := json.Marshal(event)
	require.NoError(t, err)
	id := event.ID.String()

	mock.ExpectTxPipeline()
	mock.ExpectSet("turfvote:event:"+id, string(doc), 0).SetVal("OK")
	mock.ExpectSAdd("turfvote:events", id).SetVal(1)
	mock.ExpectTxPipelineExec()

	require.NoError(t, repo.Save(ctx, event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := sampleEvent(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC))
	doc, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectGet("turfvote:event:" + event.ID.String()).SetVal(string(doc))
	loaded, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Name, loaded.Name)
	assert.Equal(t, event.Options[0].ID, loaded.Options[0].ID)

	missing := uuid.New()
	mock.ExpectGet("turfvote:event:" + missing.String()).RedisNil()
	_, err = repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListSkipsDanglingIDs(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewEventRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	older := sampleEvent(base)
	newer := sampleEvent(base.Add(time.Hour))
	olderDoc, _ := json.Marshal(older)
	newerDoc, _ := json.Marshal(newer)
	dangling := uuid.NewString()

	ids := []string{newer.ID.String(), dangling, older.ID.String()}
	mock.ExpectSMembers("turfvote:events").SetVal(ids)
	mock.ExpectMGet(
		"turfvote:event:"+ids[0],
		"turfvote:event:"+ids[1],
		"turfvote:event:"+ids[2],
	).SetVal([]interface{}{string(newerDoc), nil, string(olderDoc)})

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, older.ID, events[0].ID)
	assert.Equal(t, newer.ID, events[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewEventRepository(db)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectTxPipeline()
	mock.ExpectDel("turfvote:event:" + id.String()).SetVal(1)
	mock.ExpectSRem("turfvote:events", id.String()).SetVal(1)
	mock.ExpectTxPipelineExec()
	require.NoError(t, repo.Delete(ctx, id))

	mock.ExpectTxPipeline()
	mock.ExpectDel("turfvote:event:" + id.String()).SetVal(0)
	mock.ExpectSRem("turfvote:events", id.String()).SetVal(0)
	mock.ExpectTxPipelineExec()
	assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrEventNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTurfRepository(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewTurfRepository(db)
	ctx := context.Background()

	turf := &domain.Turf{
		ID: uuid.New(), Name: "Court 1", DefaultMinPlayers: 6, DefaultMaxPlayers: 10,
		DefaultPrice: decimal.RequireFromString("25.00"), Active: true,
		CreatedAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
	}
	doc, err := json.Marshal(turf)
	require.NoError(t, err)
	id := turf.ID.String()

	mock.ExpectHSet("turfvote:turfs", id, string(doc)).SetVal(1)
	require.NoError(t, repo.Save(ctx, turf))

	mock.ExpectHGet("turfvote:turfs", id).SetVal(string(doc))
	loaded, err := repo.GetByID(ctx, turf.ID)
	require.NoError(t, err)
	assert.True(t, loaded.DefaultPrice.Equal(turf.DefaultPrice))

	mock.ExpectHVals("turfvote:turfs").SetVal([]string{string(doc)})
	turfs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, turfs, 1)

	mock.ExpectHDel("turfvote:turfs", id).SetVal(0)
	assert.ErrorIs(t, repo.Delete(ctx, turf.ID), domain.ErrTurfNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindingRepository(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpected()
	repo := NewBindingRepository(db, BindingTTL)
	ctx := context.Background()

	binding := domain.PhoneBinding{
		Phone:   "+61400000001",
		EventID: uuid.New(),
		BoundAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
	}
	doc, err := json.Marshal(binding)
	require.NoError(t, err)

	mock.ExpectSet("turfvote:binding:+61400000001", string(doc), BindingTTL).SetVal("OK")
	require.NoError(t, repo.Bind(ctx, binding))

	mock.ExpectGet("turfvote:binding:+61400000001").SetVal(string(doc))
	loaded, err := repo.Lookup(ctx, binding.Phone)
	require.NoError(t, err)
	assert.Equal(t, binding.EventID, loaded.EventID)

	mock.ExpectGet("turfvote:binding:+61400000002").RedisNil()
	_, err = repo.Lookup(ctx, "+61400000002")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
