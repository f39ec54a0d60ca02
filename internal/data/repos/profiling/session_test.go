package profiling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/neurobridge-profiling/internal/data/repos/testutil"
	domain "github.com/yungbote/neurobridge-profiling/internal/domain/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/pkg/dbctx"
)

func TestSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSessionRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	userID := uuid.New()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	row := &domain.ProfilingSession{
		UserID:         userID,
		Status:         "created",
		CatalogVersion: "2024.1",
		Responses:      datatypes.JSON([]byte("[]")),
		StartedAt:      start,
	}
	if err := repo.Create(dbc, row); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Fatalf("Create: expected generated id")
	}

	got, err := repo.GetByID(dbc, row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.UserID != userID || got.CatalogVersion != "2024.1" {
		t.Fatalf("GetByID: unexpected row: %+v", got)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil, got %+v", missing)
	}

	locked, err := repo.GetByIDForUpdate(dbc, row.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	done := start.Add(time.Hour)
	locked.Status = "completed"
	locked.RecommendedTrack = "cybersecurity"
	locked.Scores = datatypes.JSON([]byte(`{"cybersecurity":81.5}`))
	locked.CompletedAt = &done
	if err := repo.Save(dbc, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = repo.GetByID(dbc, row.ID)
	if err != nil {
		t.Fatalf("GetByID after save: %v", err)
	}
	if got.Status != "completed" || got.RecommendedTrack != "cybersecurity" || got.CompletedAt == nil {
		t.Fatalf("Save: changes not persisted: %+v", got)
	}

	testutil.SeedSession(t, ctx, tx, userID, start.Add(2*time.Hour))
	testutil.SeedSession(t, ctx, tx, uuid.New(), start)

	list, err := repo.ListByUser(dbc, userID, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUser: expected 2 rows, got %d", len(list))
	}
	if !list[0].StartedAt.After(list[1].StartedAt) {
		t.Fatalf("ListByUser: expected newest first")
	}
}
