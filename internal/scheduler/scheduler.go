package scheduler

import (
	"context"
	"time"

	"speechcoach/internal/service"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the recurring maintenance jobs
type Scheduler struct {
	scheduler *gocron.Scheduler
	plans     *service.WeeklyPlanService
	users     *service.UserService
	email     *service.EmailService
	logger    *zap.Logger
}

// New creates a scheduler in the local timezone, matching the Monday week
// boundary used by the plan service
func New(plans *service.WeeklyPlanService, users *service.UserService, email *service.EmailService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		plans:     plans,
		users:     users,
		email:     email,
		logger:    logger,
	}
}

// Start registers the jobs and begins running them asynchronously
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("00:00").Do(s.dailyRollover)
	s.scheduler.Every(1).Monday().At("00:05").Do(s.weeklyReset)
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started")
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("scheduler stopped")
}

// dailyRollover marks the day boundary. Streaks and daily rows are computed
// lazily per request, so this only logs the rollover for operators.
func (s *Scheduler) dailyRollover() {
	s.logger.Info("daily rollover", zap.String("date", time.Now().Format("2006-01-02")))
}

// weeklyReset mails each user their closing week's recap, then zeroes every
// plan of the new week
func (s *Scheduler) weeklyReset() {
	s.sendWeeklySummaries()

	count, err := s.plans.ResetAllWeeklyProgress(time.Now())
	if err != nil {
		s.logger.Error("weekly reset failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly reset complete", zap.Int64("plans", count))
}

// sendWeeklySummaries sends last week's totals to every user that had a plan
func (s *Scheduler) sendWeeklySummaries() {
	if !s.email.IsEnabled() {
		return
	}

	summaries, err := s.plans.SummarizeClosingWeek(time.Now())
	if err != nil {
		s.logger.Error("weekly summary collection failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent := 0
	for _, summary := range summaries {
		user, err := s.users.GetUser(summary.UserID)
		if err != nil || user == nil {
			s.logger.Warn("skipping weekly summary for unknown user",
				zap.Int64("user_id", summary.UserID), zap.Error(err))
			continue
		}
		if err := s.email.SendWeeklySummaryEmail(ctx, user.Email, user.Name,
			summary.MinutesPracticed, summary.ExercisesCompleted, summary.PointsEarned); err != nil {
			s.logger.Warn("weekly summary email failed",
				zap.Int64("user_id", user.ID), zap.Error(err))
			continue
		}
		sent++
	}
	s.logger.Info("weekly summary emails sent", zap.Int("count", sent))
}
