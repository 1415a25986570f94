package poller

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	acquired  bool
	err       error
	released  int
	acquTries int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquTries++
	return f.acquired, f.err
}

func (f *fakeLock) Release(context.Context) error {
	f.released++
	return nil
}

type countingJob struct {
	name string
	runs int
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func TestRunCycleRunsRegisteredJobs(t *testing.T) {
	first := &countingJob{name: "first"}
	second := &countingJob{name: "second", err: fmt.Errorf("boom")}
	lock := &fakeLock{acquired: true}

	svc, err := NewService(ServiceParams{
		Logger:   newTestLogger(),
		Registry: NewRegistry(first, second),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
	assert.Equal(t, 1, lock.released)
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	job := &countingJob{name: "job"}
	lock := &fakeLock{acquired: false}

	svc, err := NewService(ServiceParams{
		Logger:   newTestLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Equal(t, 0, job.runs)
	assert.Equal(t, 0, lock.released)
}

func TestRunCyclePropagatesLockError(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger: newTestLogger(),
		Lock:   &fakeLock{err: fmt.Errorf("redis down")},
	})
	require.NoError(t, err)

	err = svc.RunCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock acquire")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	job := &countingJob{name: "job"}
	svc, err := NewService(ServiceParams{
		Logger:   newTestLogger(),
		Registry: NewRegistry(job),
		Lock:     &fakeLock{acquired: true},
		Interval: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err = svc.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, job.runs, 1)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(ServiceParams{Lock: &fakeLock{}})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Logger: newTestLogger()})
	require.Error(t, err)
}
