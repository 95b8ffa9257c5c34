package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/internal/cache"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/repositories/sqldb"
	"github.com/yoockh/hirea/internal/utils"
	"gorm.io/datatypes"
)

const (
	currencyIDR       = "IDR"
	manageJobCTA      = "Manage Job"
	minimumProfileSec = "Minimum Profile Information Required"
)

type CreateJobInput struct {
	Title       string
	Company     string
	Type        models.JobType
	Status      models.JobStatus
	Location    *string
	MinSalary   *int64
	MaxSalary   *int64
	Description *string
	Tags        []string
	// Needed seeds the candidate counter.
	Needed *int64
	Fields map[models.FormField]models.FieldLevel
}

type JobService interface {
	CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error)
	ListJobsFormatted(ctx context.Context) ([]models.JobListItem, error)
	ListActiveJobsFormatted(ctx context.Context) ([]models.JobListItem, error)
	// GetJobDetailFormatted returns nil, nil when the job does not exist.
	GetJobDetailFormatted(ctx context.Context, jobID int64) (*models.JobDetailView, error)
	ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error)
	JobExists(ctx context.Context, jobID int64) (bool, error)
	RecordCandidate(ctx context.Context, jobID int64) error
}

type jobService struct {
	jobs   sqldb.JobRepository
	fields sqldb.JobFieldRepository
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Logger
}

// NewJobService wires the job paths. c may be nil to disable caching.
func NewJobService(jobs sqldb.JobRepository, fields sqldb.JobFieldRepository, c cache.Cache, ttl time.Duration, l *logrus.Logger) JobService {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &jobService{jobs: jobs, fields: fields, cache: c, ttl: ttl, log: l}
}

func (s *jobService) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	const op = "JobService.CreateJob"

	levels := ApplyLockedMandatory(in.Fields)

	var rows []models.JobField
	var formFields []models.FormConfig
	for _, f := range models.FormFields {
		level, ok := levels[f]
		if !ok || level == models.LevelOff {
			continue
		}
		key, _ := f.FieldKey()
		rows = append(rows, models.JobField{Key: key, Level: level})
		formFields = append(formFields, models.FormConfig{
			Key:        key,
			Validation: models.FieldValidation{Required: level == models.LevelMandatory},
		})
	}
	if formFields == nil {
		formFields = []models.FormConfig{}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	var needed int64
	if in.Needed != nil {
		needed = *in.Needed
	}

	job := &models.Job{
		Slug:           utils.Slugify(in.Title),
		Title:          in.Title,
		Company:        in.Company,
		Type:           in.Type,
		Status:         in.Status,
		Location:       in.Location,
		MinSalary:      in.MinSalary,
		MaxSalary:      in.MaxSalary,
		Description:    in.Description,
		Tags:           tags,
		CreatedAt:      time.Now().UTC(),
		CandidateCount: needed,
		Config: datatypes.NewJSONType(models.JobConfig{
			ApplicationForm: models.ApplicationForm{
				Sections: []models.FormSection{{Title: minimumProfileSec, Fields: formFields}},
			},
		}),
	}

	if err := s.jobs.CreateWithFields(ctx, job, rows); err != nil {
		return nil, utils.Internal(op, "failed to create job", err)
	}
	s.bump(ctx, cache.GenJobs)

	saved, err := s.jobs.GetByID(ctx, job.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to reload job", err)
	}
	return saved, nil
}

// ApplyLockedMandatory returns a copy of levels where every locked form
// field that is present is forced to mandatory. Unknown form keys are
// dropped.
func ApplyLockedMandatory(levels map[models.FormField]models.FieldLevel) map[models.FormField]models.FieldLevel {
	out := make(map[models.FormField]models.FieldLevel, len(levels))
	for f, level := range levels {
		if _, ok := f.FieldKey(); !ok {
			continue
		}
		if f.IsLocked() {
			level = models.LevelMandatory
		}
		out[f] = level
	}
	return out
}

func (s *jobService) ListJobsFormatted(ctx context.Context) ([]models.JobListItem, error) {
	return s.listFormatted(ctx, "JobService.ListJobsFormatted", cache.KeyJobsAll, false)
}

func (s *jobService) ListActiveJobsFormatted(ctx context.Context) ([]models.JobListItem, error) {
	return s.listFormatted(ctx, "JobService.ListActiveJobsFormatted", cache.KeyJobsActive, true)
}

func (s *jobService) listFormatted(ctx context.Context, op, key string, activeOnly bool) ([]models.JobListItem, error) {
	key, cacheable := s.versionedKey(ctx, cache.GenJobs, key)
	var items []models.JobListItem
	if cacheable && s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	jobs, err := s.ListJobs(ctx, activeOnly)
	if err != nil {
		return nil, utils.Internal(op, "failed to list jobs", err)
	}

	items = make([]models.JobListItem, 0, len(jobs))
	for i := range jobs {
		items = append(items, FormatJobListItem(&jobs[i]))
	}
	if cacheable {
		s.cacheSet(ctx, key, items)
	}
	return items, nil
}

func (s *jobService) ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	if activeOnly {
		return s.jobs.ListByStatus(ctx, models.JobActive)
	}
	return s.jobs.List(ctx)
}

func (s *jobService) JobExists(ctx context.Context, jobID int64) (bool, error) {
	_, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, utils.Internal("JobService.JobExists", "failed to get job", err)
	}
	return true, nil
}

func (s *jobService) GetJobDetailFormatted(ctx context.Context, jobID int64) (*models.JobDetailView, error) {
	const op = "JobService.GetJobDetailFormatted"

	key, cacheable := s.versionedKey(ctx, cache.GenJobs, cache.KeyJobDetail(jobID))
	var view models.JobDetailView
	if cacheable && s.cacheGet(ctx, key, &view) {
		return &view, nil
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.Internal(op, "failed to get job", err)
	}

	fieldRows, err := s.fields.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.Internal(op, "failed to load field settings", err)
	}
	levels := make(map[models.FieldKey]models.FieldLevel, len(fieldRows))
	for _, r := range fieldRows {
		levels[r.Key] = r.Level
	}

	view = models.JobDetailView{
		Job:             formatJobDetail(job),
		ApplicationForm: filterOffFields(job.Config.Data().ApplicationForm, levels),
		FieldLevels:     levels,
	}
	if cacheable {
		s.cacheSet(ctx, key, view)
	}
	return &view, nil
}

// filterOffFields drops config entries whose current level is off. Write
// time already excludes them, so today this only normalises nil slices.
func filterOffFields(form models.ApplicationForm, levels map[models.FieldKey]models.FieldLevel) models.ApplicationForm {
	out := models.ApplicationForm{Sections: make([]models.FormSection, 0, len(form.Sections))}
	for _, sec := range form.Sections {
		fields := make([]models.FormConfig, 0, len(sec.Fields))
		for _, f := range sec.Fields {
			if levels[f.Key] == models.LevelOff {
				continue
			}
			fields = append(fields, f)
		}
		out.Sections = append(out.Sections, models.FormSection{Title: sec.Title, Fields: fields})
	}
	return out
}

func (s *jobService) RecordCandidate(ctx context.Context, jobID int64) error {
	const op = "JobService.RecordCandidate"

	if err := s.jobs.IncrementCandidateCount(ctx, jobID, 1); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.Internal(op, "failed to bump candidate count", err)
	}
	s.bump(ctx, cache.GenJobs)
	return nil
}

func FormatJobListItem(j *models.Job) models.JobListItem {
	return models.JobListItem{
		ID:          utils.DisplayID("job", j.CreatedAt, j.ID),
		Slug:        j.Slug,
		IDNum:       j.ID,
		Title:       j.Title,
		Status:      j.Status,
		CreatedAt:   utils.FormatISO(j.CreatedAt),
		SalaryRange: salaryRange(j),
		ListCard: models.ListCard{
			Badge:           j.Status,
			StartedOnText:   utils.StartedOn(j.CreatedAt),
			CTA:             manageJobCTA,
			CandidatesCount: j.CandidateCount,
		},
	}
}

func formatJobDetail(j *models.Job) models.JobDetail {
	tags := []string(j.Tags)
	if tags == nil {
		tags = []string{}
	}
	return models.JobDetail{
		ID:              j.ID,
		Slug:            j.Slug,
		Title:           j.Title,
		Company:         j.Company,
		Type:            j.Type,
		Status:          j.Status,
		Location:        j.Location,
		Description:     j.Description,
		Tags:            tags,
		SalaryRange:     salaryRange(j),
		CandidatesCount: j.CandidateCount,
		CreatedAt:       utils.FormatISO(j.CreatedAt),
	}
}

func salaryRange(j *models.Job) models.SalaryRange {
	return models.SalaryRange{
		Min:         j.MinSalary,
		Max:         j.MaxSalary,
		Currency:    currencyIDR,
		DisplayText: utils.SalaryDisplay(j.MinSalary, j.MaxSalary),
	}
}

func (s *jobService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache get failed")
		return false
	}
	return hit
}

func (s *jobService) cacheSet(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, val, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

// versionedKey stamps base with the current generation of gen. Readers that
// loaded before a write can only populate the superseded key. ok is false
// when the cache is off or the generation cannot be read.
func (s *jobService) versionedKey(ctx context.Context, gen, base string) (string, bool) {
	if s.cache == nil {
		return base, false
	}
	v, err := s.cache.Generation(ctx, gen)
	if err != nil {
		s.log.WithError(err).WithField("key", gen).Warn("cache generation read failed")
		return base, false
	}
	return cache.Versioned(base, v), true
}

func (s *jobService) bump(ctx context.Context, gen string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Bump(ctx, gen); err != nil {
		s.log.WithError(err).WithField("key", gen).Warn("cache invalidate failed")
	}
}
