package sqldb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/utils"
)

func newJob(title string, status models.JobStatus, created time.Time) *models.Job {
	return &models.Job{
		Slug:      utils.Slugify(title),
		Title:     title,
		Company:   "Rakamin",
		Type:      models.JobFullTime,
		Status:    status,
		Tags:      []string{},
		CreatedAt: created,
	}
}

func TestJobRepoCreateWithFields(t *testing.T) {
	ctx := context.Background()
	db := migratedTestDB(t)
	jobs := NewJobRepo(db)
	fields := NewJobFieldRepo(db)

	job := newJob("Backend Engineer", models.JobActive, time.Now().UTC())
	rows := []models.JobField{
		{Key: models.FieldFullName, Level: models.LevelMandatory},
		{Key: models.FieldEmail, Level: models.LevelMandatory},
		{Key: models.FieldDomicile, Level: models.LevelOptional},
	}
	if err := jobs.CreateWithFields(ctx, job, rows); err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.ID == 0 {
		t.Fatalf("Expected job id to be assigned")
	}

	got, err := fields.ListByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list fields: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 field rows, got %d", len(got))
	}
	for i, f := range got {
		if f.JobID != job.ID {
			t.Errorf("row %d: expected job id %d, got %d", i, job.ID, f.JobID)
		}
		if f.Key != rows[i].Key || f.Level != rows[i].Level {
			t.Errorf("row %d: expected %s/%s, got %s/%s", i, rows[i].Key, rows[i].Level, f.Key, f.Level)
		}
	}
}

func TestJobRepoListOrderAndStatus(t *testing.T) {
	ctx := context.Background()
	db := migratedTestDB(t)
	repo := NewJobRepo(db)

	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	older := newJob("Older", models.JobActive, base)
	newer := newJob("Newer", models.JobDraft, base.Add(time.Hour))
	for _, j := range []*models.Job{older, newer} {
		if err := repo.CreateWithFields(ctx, j, nil); err != nil {
			t.Fatalf("create %s: %v", j.Title, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Errorf("Expected newest first, got %+v", all)
	}

	active, err := repo.ListByStatus(ctx, models.JobActive)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != older.ID {
		t.Errorf("Expected only the active job, got %+v", active)
	}
}

func TestJobRepoGetByIDMissing(t *testing.T) {
	repo := NewJobRepo(migratedTestDB(t))
	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestJobRepoIncrementCandidateCount(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo(migratedTestDB(t))

	job := newJob("Designer", models.JobActive, time.Now().UTC())
	job.CandidateCount = 2
	if err := repo.CreateWithFields(ctx, job, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.IncrementCandidateCount(ctx, job.ID, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}
	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CandidateCount != 3 {
		t.Errorf("Expected 3 candidates, got %d", got.CandidateCount)
	}

	if err := repo.IncrementCandidateCount(ctx, 999, 1); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown job, got %v", err)
	}
}

func TestApplicationRepoWithAnswers(t *testing.T) {
	ctx := context.Background()
	db := migratedTestDB(t)
	apps := NewApplicationRepo(db)
	answers := NewAnswerRepo(db)

	first := &models.Application{JobID: 7, Status: models.ApplicationSubmitted, CreatedAt: time.Now().UTC()}
	if err := apps.CreateWithAnswers(ctx, first, []models.Answer{
		{Key: models.FieldFullName, Value: `"Budi"`},
		{Key: models.FieldEmail, Value: `"budi@example.com"`},
	}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	empty := &models.Application{JobID: 7, Status: models.ApplicationSubmitted, CreatedAt: time.Now().UTC()}
	if err := apps.CreateWithAnswers(ctx, empty, nil); err != nil {
		t.Fatalf("create empty: %v", err)
	}
	other := &models.Application{JobID: 8, Status: models.ApplicationSubmitted, CreatedAt: time.Now().UTC()}
	if err := apps.CreateWithAnswers(ctx, other, []models.Answer{{Key: models.FieldFullName, Value: `"Sari"`}}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	list, err := apps.ListByJob(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != empty.ID {
		t.Errorf("Expected both applications of job 7 oldest first, got %+v", list)
	}

	got, err := answers.ListByApplicationIDs(ctx, []int64{first.ID, empty.ID})
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(got))
	}
	if got[0].ApplicationID != first.ID || got[0].Value != `"Budi"` {
		t.Errorf("Unexpected first answer %+v", got[0])
	}

	none, err := answers.ListByApplicationIDs(ctx, nil)
	if err != nil || len(none) != 0 {
		t.Errorf("Expected no answers for empty id list, got %v, %v", none, err)
	}
}
