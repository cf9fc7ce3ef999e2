package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Job is one asynchronous comparison run. A comparison can sit in a
// throttle wait for minutes, so the API never runs one inside a request.
type Job struct {
	ID         uuid.UUID
	State      domain.JobState
	Input      CompareInput
	Result     *domain.Comparison
	Error      string
	CreatedAt  time.Time
	FinishedAt time.Time

	cancel context.CancelFunc
}

// JobManager owns the in-memory job registry.
type JobManager struct {
	comparisons *ComparisonService
	logger      zerolog.Logger

	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

func NewJobManager(comparisons *ComparisonService, logger zerolog.Logger) *JobManager {
	return &JobManager{
		comparisons: comparisons,
		logger:      logger.With().Str("component", "jobs").Logger(),
		jobs:        make(map[uuid.UUID]*Job),
	}
}

// Start registers a new job and runs the comparison in the background.
func (m *JobManager) Start(input CompareInput) Job {
	ctx, cancel := context.WithCancel(context.Background())

	job := &Job{
		ID:        uuid.New(),
		State:     domain.JobPending,
		Input:     input,
		CreatedAt: time.Now(),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.run(ctx, job.ID, input)

	return *job
}

func (m *JobManager) run(ctx context.Context, id uuid.UUID, input CompareInput) {
	m.setState(id, domain.JobRunning)

	result, err := m.comparisons.Compare(ctx, input)

	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.FinishedAt = time.Now()

	switch {
	case errors.Is(err, context.Canceled):
		job.State = domain.JobCancelled
	case err != nil:
		job.State = domain.JobFailed
		job.Error = err.Error()
		m.logger.Error().Err(err).Stringer("job", id).Msg("comparison failed")
	default:
		job.State = domain.JobDone
		job.Result = result
	}
}

func (m *JobManager) setState(id uuid.UUID, state domain.JobState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok && job.State == domain.JobPending {
		job.State = state
	}
}

// Get returns a snapshot of the job.
func (m *JobManager) Get(id uuid.UUID) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return Job{}, domain.ErrJobNotFound
	}
	return *job, nil
}

// Cancel signals the job's context. In-flight work stops at its next
// checkpoint; the job settles as cancelled rather than reporting a
// partial result.
func (m *JobManager) Cancel(id uuid.UUID) error {
	m.mu.RLock()
	job, ok := m.jobs[id]
	m.mu.RUnlock()

	if !ok {
		return domain.ErrJobNotFound
	}
	job.cancel()
	return nil
}
