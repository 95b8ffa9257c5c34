package state

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/services"
	"github.com/yoockh/hirea/internal/utils"
)

type EventType string

const (
	EventJobsLoaded           EventType = "jobs_loaded"
	EventJobCreated           EventType = "job_created"
	EventApplicationSubmitted EventType = "application_submitted"
	EventError                EventType = "error"
)

type Event struct {
	Type  EventType `json:"type"`
	JobID int64     `json:"job_id,omitempty"`
	// ApplicationID is set for application_submitted.
	ApplicationID int64     `json:"application_id,omitempty"`
	Error         string    `json:"error,omitempty"`
	At            time.Time `json:"at"`
}

// Snapshot is a copy of the state at one point in time.
type Snapshot struct {
	Jobs    []models.Job `json:"jobs"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

// JobsState holds the job collection shown to the admin and applicant
// views. It is only mutated through its action methods; subscribers are
// notified after every action.
type JobsState struct {
	jobs services.JobService
	apps services.ApplicationService
	log  *logrus.Logger

	mu      sync.RWMutex
	list    []models.Job
	loading bool
	err     error

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewJobsState(jobs services.JobService, apps services.ApplicationService, l *logrus.Logger) *JobsState {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &JobsState{
		jobs: jobs,
		apps: apps,
		log:  l,
		subs: map[int]func(Event){},
	}
}

// Subscribe registers fn for every future event. The returned func removes
// it and is safe to call more than once.
func (s *JobsState) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *JobsState) emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *JobsState) LoadAll(ctx context.Context) error {
	return s.load(ctx, false)
}

func (s *JobsState) LoadActiveOnly(ctx context.Context) error {
	return s.load(ctx, true)
}

func (s *JobsState) load(ctx context.Context, activeOnly bool) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	jobs, err := s.jobs.ListJobs(ctx, activeOnly)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.list = jobs
	}
	s.mu.Unlock()

	if err != nil {
		return s.fail(err, "load jobs", 0)
	}
	s.emit(Event{Type: EventJobsLoaded})
	return nil
}

// CreateJob persists the job and puts it at the front of the collection.
func (s *JobsState) CreateJob(ctx context.Context, in services.CreateJobInput) (*models.Job, error) {
	job, err := s.jobs.CreateJob(ctx, in)
	if err != nil {
		return nil, s.fail(err, "create job", 0)
	}

	s.mu.Lock()
	s.list = append([]models.Job{*job}, s.list...)
	s.err = nil
	s.mu.Unlock()

	s.emit(Event{Type: EventJobCreated, JobID: job.ID})
	return job, nil
}

// SubmitApplication stores the application, then bumps the job's persisted
// and in-memory candidate counters. A failed bump leaves the application
// stored.
func (s *JobsState) SubmitApplication(ctx context.Context, jobID int64, payload map[string]any) (int64, error) {
	exists, err := s.jobs.JobExists(ctx, jobID)
	if err != nil {
		return 0, s.fail(err, "submit application", jobID)
	}
	if !exists {
		return 0, s.fail(utils.E(utils.CodeNotFound, "JobsState.SubmitApplication", "job not found", utils.ErrNotFound), "submit application", jobID)
	}

	appID, err := s.apps.SubmitApplication(ctx, jobID, payload)
	if err != nil {
		return 0, s.fail(err, "submit application", jobID)
	}
	if err := s.jobs.RecordCandidate(ctx, jobID); err != nil {
		return appID, s.fail(err, "record candidate", jobID)
	}

	s.mu.Lock()
	for i := range s.list {
		if s.list[i].ID == jobID {
			s.list[i].CandidateCount++
			break
		}
	}
	s.err = nil
	s.mu.Unlock()

	s.emit(Event{Type: EventApplicationSubmitted, JobID: jobID, ApplicationID: appID})
	return appID, nil
}

func (s *JobsState) fail(err error, action string, jobID int64) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.log.WithError(err).WithFields(logrus.Fields{
		"action": action,
		"job_id": jobID,
	}).Error("state action failed")
	s.emit(Event{Type: EventError, JobID: jobID, Error: err.Error()})
	return err
}

func (s *JobsState) ByType(t models.JobType) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Job{}
	for _, j := range s.list {
		if j.Type == t {
			out = append(out, j)
		}
	}
	return out
}

func (s *JobsState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Jobs:    append([]models.Job{}, s.list...),
		Loading: s.loading,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
