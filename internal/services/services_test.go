package services

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/config"
	"github.com/yoockh/hirea/internal/repositories/sqldb"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "hirea.db"), config.GormConfig(nil))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := sqldb.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testServices struct {
	db    *gorm.DB
	jobs  JobService
	apps  ApplicationService
	cache *memCache
}

func newTestServices(t *testing.T, withCache bool) testServices {
	t.Helper()
	db := newTestDB(t)
	ts := testServices{db: db}
	l := quietLogger()

	jobRepo := sqldb.NewJobRepo(db)
	fieldRepo := sqldb.NewJobFieldRepo(db)
	appRepo := sqldb.NewApplicationRepo(db)
	answerRepo := sqldb.NewAnswerRepo(db)

	if withCache {
		ts.cache = newMemCache()
		ts.jobs = NewJobService(jobRepo, fieldRepo, ts.cache, time.Minute, l)
		ts.apps = NewApplicationService(appRepo, answerRepo, ts.cache, time.Minute, l)
		return ts
	}
	ts.jobs = NewJobService(jobRepo, fieldRepo, nil, 0, l)
	ts.apps = NewApplicationService(appRepo, answerRepo, nil, 0, l)
	return ts
}

// memCache is an in-process cache.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64
	gets int
	hits int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *memCache) Generation(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[key], nil
}

func (m *memCache) Bump(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[key]++
	return m.gens[key], nil
}

func (m *memCache) generation(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[key]
}
