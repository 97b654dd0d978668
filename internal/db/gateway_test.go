package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamfeedback-backend/internal/db/query"
	"teamfeedback-backend/internal/model"
)

func newTestGateway(t *testing.T) *QueryExecutor {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(gdb))
	return NewQueryExecutor(gdb)
}

func TestGateway_InsertAndGetByID(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	ev := &model.Event{Name: "Cup final", Type: "match", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, gw.Insert(ctx, model.TableEvents, ev))
	require.NotEmpty(t, ev.ID)

	var got model.Event
	require.NoError(t, gw.GetByID(ctx, model.TableEvents, ev.ID, &got))
	assert.Equal(t, "Cup final", got.Name)
	assert.Equal(t, "match", got.Type)
}

func TestGateway_GetByIDNotFound(t *testing.T) {
	gw := newTestGateway(t)

	var got model.Event
	err := gw.GetByID(context.Background(), model.TableEvents, "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGateway_StructureRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	scale := 5
	tpl := &model.Template{
		Name: "Quick check",
		Structure: model.Structure{{
			Title:     "Effort",
			Questions: []model.Question{{Type: model.QuestionTypeRating, Text: "Effort today?", Scale: &scale}},
		}},
	}
	require.NoError(t, gw.Insert(ctx, model.TableTemplates, tpl))

	var got model.Template
	require.NoError(t, gw.GetByID(ctx, model.TableTemplates, tpl.ID, &got))
	require.Len(t, got.Structure, 1)
	require.Len(t, got.Structure[0].Questions, 1)
	assert.Equal(t, 5, got.Structure[0].Questions[0].RatingScale())
}

func TestGateway_ListByFilterAndOrder(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, eventID := range []string{"e1", "e2", "e1"} {
		f := &model.Form{
			Name:      "form",
			EventID:   eventID,
			Structure: model.Structure{},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, gw.Insert(ctx, model.TableForms, f))
	}

	var forms []model.Form
	err := gw.ListBy(ctx, model.TableForms, query.NewFilter().Eq("event_id", "e1").NewestFirst(), &forms)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.True(t, forms[0].CreatedAt.After(forms[1].CreatedAt))

	var all []model.Form
	require.NoError(t, gw.ListBy(ctx, model.TableForms, query.NewFilter().Eq("event_id", ""), &all))
	assert.Len(t, all, 3)
}

func TestGateway_ListByRejectsBadColumn(t *testing.T) {
	gw := newTestGateway(t)

	var forms []model.Form
	err := gw.ListBy(context.Background(), model.TableForms, query.NewFilter().Eq("id; drop table forms", 1), &forms)
	var se *StorageError
	assert.True(t, errors.As(err, &se))
}

func TestGateway_UpdateAndDelete(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	f := &model.Form{Name: "form", Status: model.FormStatusActive, Structure: model.Structure{}}
	require.NoError(t, gw.Insert(ctx, model.TableForms, f))

	var updated model.Form
	require.NoError(t, gw.Update(ctx, model.TableForms, f.ID, map[string]interface{}{"status": model.FormStatusClosed}, &updated))
	assert.Equal(t, model.FormStatusClosed, updated.Status)

	require.NoError(t, gw.Delete(ctx, model.TableForms, f.ID))
	assert.ErrorIs(t, gw.Delete(ctx, model.TableForms, f.ID), ErrNotFound)
	assert.ErrorIs(t, gw.Update(ctx, model.TableForms, f.ID, map[string]interface{}{"status": "x"}, nil), ErrNotFound)
}

func TestGateway_MalformedIDIsNotFound(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	var got model.Template
	for _, id := range []string{"no-such-template", "post-match-review", "", "123"} {
		assert.ErrorIs(t, gw.GetByID(ctx, model.TableTemplates, id, &got), ErrNotFound, id)
		assert.ErrorIs(t, gw.Update(ctx, model.TableTemplates, id, map[string]interface{}{"name": "x"}, nil), ErrNotFound, id)
		assert.ErrorIs(t, gw.Delete(ctx, model.TableTemplates, id), ErrNotFound, id)
	}

	assert.True(t, ValidID("5f0e2a0c-8d44-4d7e-9d2b-3c1f6c6b1a10"))
	assert.False(t, ValidID("evt-1"))
}

func TestGateway_UpdateIf(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	f := &model.Form{Name: "form", Status: model.FormStatusClosed, Structure: model.Structure{}}
	require.NoError(t, gw.Insert(ctx, model.TableForms, f))

	err := gw.UpdateIf(ctx, model.TableForms, f.ID,
		map[string]interface{}{"status": model.FormStatusDraft},
		map[string]interface{}{"status": model.FormStatusActive}, nil)
	assert.ErrorIs(t, err, ErrStale)

	var got model.Form
	require.NoError(t, gw.GetByID(ctx, model.TableForms, f.ID, &got))
	assert.Equal(t, model.FormStatusClosed, got.Status, "row untouched when the expectation fails")

	require.NoError(t, gw.UpdateIf(ctx, model.TableForms, f.ID,
		map[string]interface{}{"status": model.FormStatusClosed},
		map[string]interface{}{"name": "renamed"}, &got))
	assert.Equal(t, "renamed", got.Name)

	err = gw.UpdateIf(ctx, model.TableForms, "6b7c3f0e-1d2a-4c8b-9e5f-0a1b2c3d4e5f",
		map[string]interface{}{"status": model.FormStatusDraft},
		map[string]interface{}{"status": model.FormStatusActive}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGateway_UnknownTable(t *testing.T) {
	gw := newTestGateway(t)

	err := gw.Insert(context.Background(), "secrets", &model.Event{})
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, `unknown table "secrets"`, se.Error())
}

func TestGateway_AnonymousResponseDropsUser(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	uid := "player-1"
	resp := &model.Response{FormID: "f1", UserID: &uid, IsAnonymous: true}
	require.NoError(t, gw.Insert(ctx, model.TableResponses, resp))

	var got model.Response
	require.NoError(t, gw.GetByID(ctx, model.TableResponses, resp.ID, &got))
	assert.Nil(t, got.UserID)
	assert.False(t, got.SubmittedAt.IsZero())
}
