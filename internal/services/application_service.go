package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/internal/cache"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/repositories/sqldb"
	"github.com/yoockh/hirea/internal/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type ApplicationService interface {
	// SubmitApplication stores one application and an answer per recognised
	// key in payload, returning the new application id. It does not touch
	// the job's candidate counter.
	SubmitApplication(ctx context.Context, jobID int64, payload map[string]any) (int64, error)
	ListApplicationsByJobFormatted(ctx context.Context, jobID int64) (*models.CandidateList, error)
}

type applicationService struct {
	apps    sqldb.ApplicationRepository
	answers sqldb.AnswerRepository
	cache   cache.Cache
	ttl     time.Duration
	log     *logrus.Logger
}

func NewApplicationService(apps sqldb.ApplicationRepository, answers sqldb.AnswerRepository, c cache.Cache, ttl time.Duration, l *logrus.Logger) ApplicationService {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &applicationService{apps: apps, answers: answers, cache: c, ttl: ttl, log: l}
}

func (s *applicationService) SubmitApplication(ctx context.Context, jobID int64, payload map[string]any) (int64, error) {
	const op = "ApplicationService.SubmitApplication"

	// FieldOrder keeps the insert order stable across runs.
	var answers []models.Answer
	for _, key := range models.FieldOrder {
		raw, ok := payload[string(key)]
		if !ok {
			continue
		}
		b, err := json.Marshal(storableValue(key, raw))
		if err != nil {
			return 0, utils.E(utils.CodeInvalidArgument, op, "unsupported value for "+string(key), err)
		}
		answers = append(answers, models.Answer{Key: key, Value: string(b)})
	}

	app := &models.Application{
		JobID:     jobID,
		Status:    models.ApplicationSubmitted,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.apps.CreateWithAnswers(ctx, app, answers); err != nil {
		return 0, utils.Internal(op, "failed to submit application", err)
	}

	if s.cache != nil {
		if _, err := s.cache.Bump(ctx, cache.GenCandidates(jobID)); err != nil {
			s.log.WithError(err).WithField("job_id", jobID).Warn("cache invalidate failed")
		}
	}
	return app.ID, nil
}

// storableValue rewrites a structured phone payload into "<dial> <local>".
// Everything else is stored as submitted.
func storableValue(key models.FieldKey, v any) any {
	if key != models.FieldPhoneNumber {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	if phone, ok := utils.PhoneDisplay(s); ok {
		return phone
	}
	return v
}

func (s *applicationService) ListApplicationsByJobFormatted(ctx context.Context, jobID int64) (*models.CandidateList, error) {
	const op = "ApplicationService.ListApplicationsByJobFormatted"

	var key string
	cacheable := false
	if s.cache != nil {
		gen, err := s.cache.Generation(ctx, cache.GenCandidates(jobID))
		if err != nil {
			s.log.WithError(err).WithField("job_id", jobID).Warn("cache generation read failed")
		} else {
			key = cache.Versioned(cache.KeyJobCandidates(jobID), gen)
			cacheable = true
		}
	}
	if cacheable {
		var cached models.CandidateList
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("cache get failed")
		} else if hit {
			return &cached, nil
		}
	}

	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list applications", err)
	}

	ids := make([]int64, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ID)
	}
	answers, err := s.answers.ListByApplicationIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal(op, "failed to load answers", err)
	}

	byApp := make(map[int64][]models.Answer, len(apps))
	for _, ans := range answers {
		byApp[ans.ApplicationID] = append(byApp[ans.ApplicationID], ans)
	}

	out := &models.CandidateList{Data: make([]models.CandidateView, 0, len(apps))}
	for _, a := range apps {
		out.Data = append(out.Data, models.CandidateView{
			ID:         utils.DisplayID("cand", a.CreatedAt, a.ID),
			AppliedAt:  utils.FormatISO(a.CreatedAt),
			Attributes: BuildAttributes(byApp[a.ID]),
		})
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("cache set failed")
		}
	}
	return out, nil
}

// BuildAttributes turns the answer rows of one application into display
// attributes: recognised keys only, last row per key wins, sorted by the
// canonical order and then by label.
func BuildAttributes(answers []models.Answer) []models.CandidateAttribute {
	byKey := make(map[models.FieldKey]models.CandidateAttribute, len(answers))
	for _, ans := range answers {
		if !ans.Key.Known() {
			continue
		}
		byKey[ans.Key] = models.CandidateAttribute{
			Key:   ans.Key,
			Label: ans.Key.Label(),
			Value: displayValue(ans.Key, ans.Value),
			Order: ans.Key.Order(),
		}
	}

	attrs := make([]models.CandidateAttribute, 0, len(byKey))
	for _, a := range byKey {
		attrs = append(attrs, a)
	}

	col := collate.New(language.English)
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].Order != attrs[j].Order {
			return attrs[i].Order < attrs[j].Order
		}
		return col.CompareString(attrs[i].Label, attrs[j].Label) < 0
	})
	return attrs
}

// displayValue decodes a stored answer. Photos must be strings; anything
// that fails to decode is shown as stored.
func displayValue(key models.FieldKey, stored string) *string {
	var v any
	if err := json.Unmarshal([]byte(stored), &v); err != nil {
		return &stored
	}
	if v == nil {
		return nil
	}
	if key == models.FieldPhotoProfile {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		return &s
	}
	s := utils.Stringify(v)
	return &s
}
