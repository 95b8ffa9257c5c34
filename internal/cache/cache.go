package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores formatted read models. A miss is (false, nil).
//
// Payload keys embed a generation counter read before loading. Writers bump
// the counter after committing, so a payload built from rows read before
// the write lands under a key no later reader asks for.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	// Generation returns the counter at key, 0 when it was never bumped.
	Generation(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, key string) (int64, error)
}

const (
	// GenJobs covers the job lists and every job detail.
	GenJobs = "hirea:jobs:gen"

	KeyJobsAll    = "hirea:jobs:list:all"
	KeyJobsActive = "hirea:jobs:list:active"
)

func KeyJobDetail(jobID int64) string {
	return fmt.Sprintf("hirea:jobs:detail:%d", jobID)
}

func KeyJobCandidates(jobID int64) string {
	return fmt.Sprintf("hirea:jobs:%d:candidates", jobID)
}

// GenCandidates covers the candidate list of one job.
func GenCandidates(jobID int64) string {
	return fmt.Sprintf("hirea:jobs:%d:candidates:gen", jobID)
}

// Versioned appends the generation to a payload key.
func Versioned(key string, gen int64) string {
	return fmt.Sprintf("%s@%d", key, gen)
}
