package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"riskreport/internal/logger"
)

func TestMain(m *testing.M) {
	restore := logger.SetForTest(zap.NewNop().Sugar())
	defer restore()
	m.Run()
}

type countingJob struct {
	runs  atomic.Int32
	err   error
	block bool
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	if j.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return j.err
}

func TestAddJob(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"five_fields", "30 6 * * MON-FRI", false},
		{"six_fields", "0 30 6 * * MON-FRI", false},
		{"descriptor", "@daily", false},
		{"every", "@every 1h", false},
		{"garbage", "whenever", true},
		{"too_many_fields", "0 0 0 0 0 0 0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().AddJob(tt.schedule, &countingJob{})
			if (err != nil) != tt.wantErr {
				t.Errorf("AddJob(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestRunNow(t *testing.T) {
	boom := errors.New("boom")
	job := &countingJob{err: boom}
	if err := New().RunNow(job); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if job.runs.Load() != 1 {
		t.Errorf("expected 1 run, got %d", job.runs.Load())
	}
}

func TestStopCancelsJobs(t *testing.T) {
	s := New()
	s.Start()

	job := &countingJob{block: true}
	done := make(chan error, 1)
	go func() { done <- s.RunNow(job) }()

	for job.runs.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	s.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job did not observe Stop")
	}
}

func TestScheduledRun(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}
	s := New()
	job := &countingJob{}
	if err := s.AddJob("@every 1s", job); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for job.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if job.runs.Load() == 0 {
		t.Error("expected the job to run on its schedule")
	}
}
