package service_test

import (
	"testing"
	"time"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/HSAR/GamesInCommon/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobManager(t *testing.T, fake *testutil.FakeSteam) *service.JobManager {
	t.Helper()
	return service.NewJobManager(newComparisonService(t, fake), testutil.Logger())
}

func waitForSettled(t *testing.T, jobs *service.JobManager, id uuid.UUID) service.Job {
	t.Helper()

	require.Eventually(t, func() bool {
		job, err := jobs.Get(id)
		if err != nil {
			return false
		}
		switch job.State {
		case domain.JobDone, domain.JobFailed, domain.JobCancelled:
			return true
		}
		return false
	}, 5*time.Second, 10*time.Millisecond, "job never settled")

	job, err := jobs.Get(id)
	require.NoError(t, err)
	return job
}

func TestJobLifecycle_Done(t *testing.T) {
	fake := twoAccountFake(t)
	jobs := newJobManager(t, fake)

	started := jobs.Start(service.CompareInput{Accounts: []string{"alice", "bob"}})
	assert.NotEqual(t, uuid.Nil, started.ID)

	job := waitForSettled(t, jobs, started.ID)
	assert.Equal(t, domain.JobDone, job.State)
	require.NotNil(t, job.Result)
	assert.ElementsMatch(t, []uint32{2, 3}, appIDs(job.Result.Games))
	assert.False(t, job.FinishedAt.IsZero())
}

func TestJobLifecycle_Failed(t *testing.T) {
	fake := testutil.NewFakeSteam()
	t.Cleanup(fake.Close)
	jobs := newJobManager(t, fake)

	started := jobs.Start(service.CompareInput{Accounts: []string{"nobody"}})

	job := waitForSettled(t, jobs, started.ID)
	assert.Equal(t, domain.JobFailed, job.State)
	assert.NotEmpty(t, job.Error)
	assert.Nil(t, job.Result)
}

func TestJobLifecycle_Cancelled(t *testing.T) {
	fake := twoAccountFake(t)
	fake.HangLibrary(200)
	jobs := newJobManager(t, fake)

	started := jobs.Start(service.CompareInput{Accounts: []string{"alice", "bob"}})

	require.Eventually(t, func() bool {
		job, err := jobs.Get(started.ID)
		return err == nil && job.State == domain.JobRunning
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, jobs.Cancel(started.ID))

	job := waitForSettled(t, jobs, started.ID)
	assert.Equal(t, domain.JobCancelled, job.State)
	assert.Nil(t, job.Result, "a cancelled job reports no partial result")
}

func TestJobs_GetUnknown(t *testing.T) {
	fake := testutil.NewFakeSteam()
	t.Cleanup(fake.Close)
	jobs := newJobManager(t, fake)

	_, err := jobs.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	assert.ErrorIs(t, jobs.Cancel(uuid.New()), domain.ErrJobNotFound)
}
