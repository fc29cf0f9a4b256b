// Package scheduler runs periodic community report generation.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/models"
)

// Scheduler 는 커뮤니티 리포트를 주기적으로 생성한다.
// community.schedule_enabled 가 꺼져 있으면 Start 는 아무것도 등록하지 않는다.
type Scheduler struct {
	analytics *services.AnalyticsService
	cron      *cron.Cron
	enabled   bool
}

func New(analytics *services.AnalyticsService, enabled bool) *Scheduler {
	return &Scheduler{
		analytics: analytics,
		cron:      cron.New(cron.WithSeconds()),
		enabled:   enabled,
	}
}

// Start 는 daily/weekly/monthly 리포트 생성 작업을 등록하고 크론을 시작한다.
// - daily: 매일 09:00 UTC
// - weekly: 매주 월요일 09:00 UTC
// - monthly: 매월 1일 09:00 UTC
func (s *Scheduler) Start() error {
	if !s.enabled {
		logger.Log.Info("community report scheduler disabled")
		return nil
	}

	jobs := []struct {
		spec   string
		period string
	}{
		{"0 0 9 * * *", models.PeriodDaily},
		{"0 0 9 * * MON", models.PeriodWeekly},
		{"0 0 9 1 * *", models.PeriodMonthly},
	}

	for _, job := range jobs {
		period := job.period
		if _, err := s.cron.AddFunc(job.spec, func() {
			s.generate(period)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	logger.Log.Info("community report scheduler started")
	return nil
}

func (s *Scheduler) generate(period string) {
	logger.InfoWithFields("scheduled community report starting", logger.Fields{
		"period": period,
	})
	if _, err := s.analytics.GenerateReport(context.Background(), period); err != nil {
		logger.ErrorWithFields("scheduled community report failed", logger.Fields{
			"period": period,
			"error":  err.Error(),
		})
		return
	}
	logger.InfoWithFields("scheduled community report completed", logger.Fields{
		"period": period,
	})
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
