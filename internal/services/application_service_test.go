package services

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yoockh/hirea/internal/cache"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/repositories/sqldb"
)

func TestSubmitApplicationPhoneAndWhitelist(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t, false)

	job, err := ts.jobs.CreateJob(ctx, baseInput("Support Agent"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	appID, err := ts.apps.SubmitApplication(ctx, job.ID, map[string]any{
		"full_name":    "Budi Santoso",
		"email":        "budi@example.com",
		"phone_number": `{"country":"ID","local":"81234567"}`,
		"nickname":     "bud",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, err := sqldb.NewAnswerRepo(ts.db).ListByApplicationIDs(ctx, []int64{appID})
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	var phone string
	for _, a := range stored {
		if a.Key != models.FieldPhoneNumber {
			continue
		}
		if err := json.Unmarshal([]byte(a.Value), &phone); err != nil {
			t.Fatalf("decode stored phone %q: %v", a.Value, err)
		}
	}
	if phone != "+62 81234567" {
		t.Errorf("Expected stored phone +62 81234567, got %q", phone)
	}

	list, err := ts.apps.ListApplicationsByJobFormatted(ctx, job.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Data) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(list.Data))
	}
	c := list.Data[0]
	if !strings.HasPrefix(c.ID, "cand") || !strings.HasSuffix(c.ID, "0001") {
		t.Errorf("Unexpected candidate id %q", c.ID)
	}
	if len(c.Attributes) != 3 {
		t.Fatalf("Expected 3 attributes (unknown key dropped), got %+v", c.Attributes)
	}
	for _, a := range c.Attributes {
		if a.Key == models.FieldPhoneNumber && (a.Value == nil || *a.Value != "+62 81234567") {
			t.Errorf("Expected rewritten phone, got %v", a.Value)
		}
	}
}

func TestSubmitApplicationPhoneNotStructured(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t, false)

	if _, err := ts.apps.SubmitApplication(ctx, 1, map[string]any{"phone_number": "0812-345"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	list, err := ts.apps.ListApplicationsByJobFormatted(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := list.Data[0].Attributes[0].Value; got == nil || *got != "0812-345" {
		t.Errorf("Expected phone stored as submitted, got %v", got)
	}
}

func TestAttributeOrderForSubset(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t, false)

	_, err := ts.apps.SubmitApplication(ctx, 3, map[string]any{
		"email":     "sari@example.com",
		"full_name": "Sari",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	list, err := ts.apps.ListApplicationsByJobFormatted(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	attrs := list.Data[0].Attributes
	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != models.FieldFullName || attrs[0].Order != 2 || attrs[0].Label != "Full Name" {
		t.Errorf("Unexpected first attribute %+v", attrs[0])
	}
	if attrs[1].Key != models.FieldEmail || attrs[1].Order != 3 || attrs[1].Label != "Email" {
		t.Errorf("Unexpected second attribute %+v", attrs[1])
	}
}

func TestApplicationWithoutAnswersIsListed(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t, false)

	id, err := ts.apps.SubmitApplication(ctx, 4, map[string]any{"favourite_color": "blue"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id == 0 {
		t.Fatalf("Expected application id")
	}
	list, err := ts.apps.ListApplicationsByJobFormatted(ctx, 4)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Data) != 1 {
		t.Fatalf("Expected the application to be listed once, got %d", len(list.Data))
	}
	if list.Data[0].Attributes == nil || len(list.Data[0].Attributes) != 0 {
		t.Errorf("Expected empty attribute list, got %#v", list.Data[0].Attributes)
	}

	empty, err := ts.apps.ListApplicationsByJobFormatted(ctx, 5)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if empty.Data == nil || len(empty.Data) != 0 {
		t.Errorf("Expected empty data for a job without applications, got %#v", empty.Data)
	}
}

func TestBuildAttributesStringification(t *testing.T) {
	answers := []models.Answer{
		{Key: models.FieldGender, Value: `"female"`},
		{Key: models.FieldPhotoProfile, Value: `{"url":"x"}`},
		{Key: models.FieldDomicile, Value: `null`},
		{Key: models.FieldDateOfBirth, Value: `19900101`},
		{Key: models.FieldLinkedIn, Value: `["a","b"]`},
		{Key: models.FieldFullName, Value: `"First"`},
		{Key: models.FieldFullName, Value: `"Second"`},
		{Key: "nickname", Value: `"bud"`},
	}
	attrs := BuildAttributes(answers)

	var keys []models.FieldKey
	values := map[models.FieldKey]*string{}
	for _, a := range attrs {
		keys = append(keys, a.Key)
		values[a.Key] = a.Value
	}
	wantKeys := []models.FieldKey{
		models.FieldPhotoProfile,
		models.FieldFullName,
		models.FieldDomicile,
		models.FieldGender,
		models.FieldLinkedIn,
		models.FieldDateOfBirth,
	}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("Expected keys %v, got %v", wantKeys, keys)
	}
	if values[models.FieldPhotoProfile] != nil {
		t.Errorf("Expected non-string photo to be null")
	}
	if values[models.FieldDomicile] != nil {
		t.Errorf("Expected null domicile")
	}
	if v := values[models.FieldFullName]; v == nil || *v != "Second" {
		t.Errorf("Expected last full_name to win, got %v", v)
	}
	if v := values[models.FieldDateOfBirth]; v == nil || *v != "19900101" {
		t.Errorf("Expected numeric value as text, got %v", v)
	}
	if v := values[models.FieldLinkedIn]; v == nil || *v != "a,b" {
		t.Errorf("Expected joined array, got %v", v)
	}
}

func TestToCandidateRows(t *testing.T) {
	s := func(v string) *string { return &v }
	list := &models.CandidateList{Data: []models.CandidateView{
		{
			ID:        "cand202510010001",
			AppliedAt: "2025-10-01T08:00:00.000Z",
			Attributes: []models.CandidateAttribute{
				{Key: models.FieldFullName, Value: s("Budi")},
				{Key: models.FieldEmail, Value: s("budi@example.com")},
				{Key: models.FieldPhoneNumber, Value: s(`{"country":"MY","local":"123"}`)},
				{Key: models.FieldGender, Value: s("male")},
				{Key: models.FieldDomicile, Value: nil},
			},
		},
		{
			ID:        "cand202510010002",
			AppliedAt: "2025-10-01T09:00:00.000Z",
			Attributes: []models.CandidateAttribute{
				{Key: models.FieldGender, Value: s("other")},
				{Key: models.FieldPhoneNumber, Value: s("+62 8123")},
			},
		},
	}}

	rows := ToCandidateRows(list)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Budi" || rows[0].Phone != "+60 123" || rows[0].Gender != "Male" || rows[0].Domicile != "" {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	if rows[1].Name != "" || rows[1].Gender != "" || rows[1].Phone != "+62 8123" {
		t.Errorf("Unexpected second row %+v", rows[1])
	}
	if rows[1].AppliedAt != "2025-10-01T09:00:00.000Z" {
		t.Errorf("Expected applied_at to pass through, got %q", rows[1].AppliedAt)
	}

	if got := ToCandidateRows(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty rows for nil list")
	}
}

// stallingApplicationRepo parks the first ListByJob call after the read.
type stallingApplicationRepo struct {
	sqldb.ApplicationRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *stallingApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	apps, err := r.ApplicationRepository.ListByJob(ctx, jobID)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return apps, err
}

func TestSlowCandidateListDoesNotCacheOverSubmit(t *testing.T) {
	ctx := context.Background()
	ts := newTestServices(t, true)
	repo := &stallingApplicationRepo{
		ApplicationRepository: sqldb.NewApplicationRepo(ts.db),
		loaded:                make(chan struct{}),
		release:               make(chan struct{}),
	}
	apps := NewApplicationService(repo, sqldb.NewAnswerRepo(ts.db), ts.cache, time.Minute, quietLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := apps.ListApplicationsByJobFormatted(ctx, 5); err != nil {
			t.Errorf("slow list: %v", err)
		}
	}()

	<-repo.loaded
	if _, err := apps.SubmitApplication(ctx, 5, map[string]any{"full_name": "Rina"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	close(repo.release)
	wg.Wait()

	if gen := ts.cache.generation(cache.GenCandidates(5)); gen != 1 {
		t.Errorf("Expected candidate generation 1, got %d", gen)
	}
	list, err := apps.ListApplicationsByJobFormatted(ctx, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Data) != 1 {
		t.Errorf("Expected 1 candidate after the submit, got %d", len(list.Data))
	}
}
