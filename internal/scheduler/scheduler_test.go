package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json", Env: "development"})
}

func TestAddJob(t *testing.T) {
	s := New(testLogger())

	job := &fakeJob{name: "test_job", schedule: "0 0 3 * * *"}
	require.NoError(t, s.AddJob(job))

	assert.Contains(t, s.Jobs(), "test_job")
}

func TestAddJobDuplicate(t *testing.T) {
	s := New(testLogger())

	job := &fakeJob{name: "test_job", schedule: "0 0 3 * * *"}
	require.NoError(t, s.AddJob(job))

	err := s.AddJob(&fakeJob{name: "test_job", schedule: "0 0 4 * * *"})
	assert.Error(t, err)
}

func TestAddJobInvalidSchedule(t *testing.T) {
	s := New(testLogger())

	err := s.AddJob(&fakeJob{name: "bad", schedule: "not a cron expression"})
	assert.Error(t, err)
}

func TestRunJobNotFound(t *testing.T) {
	s := New(testLogger())

	err := s.RunJob("missing")
	assert.Error(t, err)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(testLogger())
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "ok_job", schedule: "0 0 3 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.History("ok_job")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)

	result := history.LastResult()
	assert.True(t, result.Success)
	assert.Equal(t, "ok_job", result.JobName)
	assert.Equal(t, 1, job.runs)
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := New(testLogger())
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "failing_job", schedule: "0 0 3 * * *", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	// Initial attempt plus maxRetries
	assert.Equal(t, s.maxRetries+1, job.runs)

	history, err := s.History("failing_job")
	require.NoError(t, err)

	result := history.LastResult()
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "boom", result.Error)
}

func TestJobHistoryLimit(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "j", Success: true})
	}

	assert.Len(t, h.Results, historyLimit)
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})

	assert.InDelta(t, 2.0/3.0, h.SuccessRate(), 1e-9)
}

func TestJobHistoryLastResultEmpty(t *testing.T) {
	h := &JobHistory{}
	assert.Nil(t, h.LastResult())
}
