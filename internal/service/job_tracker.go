package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/pkg/logger"
)

// JobInfo is the tracked state of one named background job.
type JobInfo struct {
	JobID        string      `json:"job_id"`
	Status       string      `json:"status"`
	LastRunTime  *time.Time  `json:"last_run_time,omitempty"`
	LastDuration *float64    `json:"last_duration_seconds,omitempty"`
	LastResult   interface{} `json:"last_result,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// JobTracker tracks background job execution. One instance exists per
// process, constructed at startup and injected into its consumers.
//
// The tracker does not enforce mutual exclusion itself: callers of
// no-overlap jobs must check IsJobRunning before starting (check-then-
// act under the tracker's lock is not needed because a stale positive
// only delays the job one cycle). Per-ticker fetches intentionally run
// concurrently since they touch disjoint data.
type JobTracker struct {
	mu      sync.Mutex
	jobs    map[string]*JobInfo
	logger  *logger.Logger
	runRepo repository.JobRunRepository
}

// NewJobTracker creates a tracker seeded with the known jobs in idle
// state. runRepo may be nil to disable persisted run history.
func NewJobTracker(log *logger.Logger, runRepo repository.JobRunRepository) *JobTracker {
	jobs := make(map[string]*JobInfo)
	for _, id := range []string{entity.JobFetchAllNews, entity.JobFetchNewsTicker, entity.JobAnalyzePending} {
		jobs[id] = &JobInfo{JobID: id, Status: entity.JobStatusIdle}
	}
	return &JobTracker{
		jobs:    jobs,
		logger:  log,
		runRepo: runRepo,
	}
}

// StartJob marks a job as running and clears any prior error.
func (t *JobTracker) StartJob(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		job = &JobInfo{JobID: jobID}
		t.jobs[jobID] = job
	}
	now := time.Now()
	job.Status = entity.JobStatusRunning
	job.LastRunTime = &now
	job.Error = ""
}

// CompleteJob records the outcome of a run: failed when an error is
// given, otherwise back to idle.
func (t *JobTracker) CompleteJob(jobID string, duration time.Duration, result interface{}, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		job = &JobInfo{JobID: jobID}
		t.jobs[jobID] = job
	}

	seconds := duration.Seconds()
	job.LastDuration = &seconds
	job.LastResult = result
	if err != nil {
		job.Status = entity.JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = entity.JobStatusIdle
		job.Error = ""
	}
}

// IsJobRunning reports whether the named job is currently running.
func (t *JobTracker) IsJobRunning(jobID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	return ok && job.Status == entity.JobStatusRunning
}

// Status returns a snapshot of one job.
func (t *JobTracker) Status(jobID string) (JobInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		return JobInfo{}, false
	}
	return *job, true
}

// AllStatus returns a snapshot of every tracked job.
func (t *JobTracker) AllStatus() map[string]JobInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]JobInfo, len(t.jobs))
	for id, job := range t.jobs {
		out[id] = *job
	}
	return out
}

// Run executes fn under the tracker, recording start/completion and a
// persisted JobRun row. Callers of no-overlap jobs are expected to have
// checked IsJobRunning first.
func (t *JobTracker) Run(ctx context.Context, jobID string, fn func(context.Context) (interface{}, error)) {
	t.StartJob(jobID)
	started := time.Now()

	run := &entity.JobRun{
		JobID:     jobID,
		Status:    entity.JobStatusRunning,
		StartedAt: started,
	}
	if t.runRepo != nil {
		if err := t.runRepo.Create(ctx, run); err != nil {
			t.logger.Error("Failed to persist job run", logger.ErrorField(err), logger.StringField("job_id", jobID))
		}
	}

	result, err := fn(ctx)
	duration := time.Since(started)
	t.CompleteJob(jobID, duration, result, err)

	if err != nil {
		t.logger.Error("Job failed",
			logger.StringField("job_id", jobID),
			logger.Field("duration", duration),
			logger.ErrorField(err))
	} else {
		t.logger.Info("Job completed",
			logger.StringField("job_id", jobID),
			logger.Field("duration", duration))
	}

	if t.runRepo != nil && run.ID != 0 {
		completed := time.Now()
		run.CompletedAt = &completed
		run.DurationMs = duration.Milliseconds()
		if err != nil {
			run.Status = entity.JobStatusFailed
			run.ErrorMessage = err.Error()
		} else {
			run.Status = entity.JobStatusCompleted
			if payload, marshalErr := json.Marshal(result); marshalErr == nil {
				run.Result = payload
			}
		}
		if updateErr := t.runRepo.Update(ctx, run); updateErr != nil {
			t.logger.Error("Failed to update job run", logger.ErrorField(updateErr), logger.StringField("job_id", jobID))
		}
	}
}
