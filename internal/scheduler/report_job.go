package scheduler

import (
	"context"
	"time"

	"riskreport/internal/date"
	"riskreport/internal/report"
)

// ReportJob runs one configured risk report for the last business day
// before the time it fires.
type ReportJob struct {
	reports      report.Servicer
	portfolio    string
	keyFigures   []string
	lookbackDays int
	now          func() time.Time
}

// ReportJobConfig holds configuration for the report job.
type ReportJobConfig struct {
	Reports    report.Servicer
	Portfolio  string
	KeyFigures []string
	// LookbackDays sets the window start that many days before the report
	// date. Zero starts the window on January 1 of the report year.
	LookbackDays int
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewReportJob creates a new report job.
func NewReportJob(cfg ReportJobConfig) *ReportJob {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ReportJob{
		reports:      cfg.Reports,
		portfolio:    cfg.Portfolio,
		keyFigures:   cfg.KeyFigures,
		lookbackDays: cfg.LookbackDays,
		now:          now,
	}
}

// Name returns the job name.
func (j *ReportJob) Name() string {
	return "risk_report"
}

// Settings returns the report settings for a run at t.
func (j *ReportJob) Settings(t time.Time) report.Settings {
	to := date.LastBusinessDay(date.FromTime(t))
	from := to.StartOfYear()
	if j.lookbackDays > 0 {
		from = to.Add(-j.lookbackDays)
	}
	return report.Settings{
		PortfolioName: j.portfolio,
		DateFrom:      from,
		DateTo:        to,
		KeyFigures:    j.keyFigures,
	}
}

// Run generates the report. The computed values are persisted by the
// generator; the report itself is discarded.
func (j *ReportJob) Run(ctx context.Context) error {
	_, err := j.reports.Generate(ctx, j.Settings(j.now()))
	return err
}
