// Package jobs runs the scheduled background work: leaderboard
// refreshes, weekly report emails and session cleanup.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Kishori-12/fitstreak-ai/internal/dates"
	"github.com/Kishori-12/fitstreak-ai/internal/repository"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
)

// Scheduler owns the cron instance and the jobs registered on it
type Scheduler struct {
	cron               *cron.Cron
	authService        *service.AuthService
	progressService    *service.ProgressService
	leaderboardService *service.LeaderboardService
	emailService       *service.EmailService
	settingsRepo       *repository.SettingsRepository
}

// NewScheduler creates a scheduler running in the server's local time,
// matching the local-day keys used by the streak rules.
func NewScheduler(
	authService *service.AuthService,
	progressService *service.ProgressService,
	leaderboardService *service.LeaderboardService,
	emailService *service.EmailService,
	settingsRepo *repository.SettingsRepository,
) *Scheduler {
	return &Scheduler{
		cron:               cron.New(cron.WithLocation(time.Local)),
		authService:        authService,
		progressService:    progressService,
		leaderboardService: leaderboardService,
		emailService:       emailService,
		settingsRepo:       settingsRepo,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) {
	// Re-rank the leaderboard every 5 minutes
	s.cron.AddFunc("*/5 * * * *", func() {
		if err := s.leaderboardService.Refresh(); err != nil {
			log.Printf("[CRON] leaderboard refresh failed: %v", err)
		}
	})

	// Weekly report emails on Monday morning
	s.cron.AddFunc("0 9 * * 1", func() {
		log.Println("[CRON] sending weekly reports")
		s.sendWeeklyReports(ctx)
	})

	// Expired session cleanup every hour
	s.cron.AddFunc("0 * * * *", func() {
		if err := s.authService.CleanupExpiredSessions(); err != nil {
			log.Printf("[CRON] session cleanup failed: %v", err)
		}
	})

	s.cron.Start()
	log.Println("Job scheduler started")
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("Job scheduler stopped")
}

func (s *Scheduler) sendWeeklyReports(ctx context.Context) {
	if !s.emailService.IsEnabled() {
		log.Println("[CRON] weekly reports skipped: email service disabled")
		return
	}

	recipients, err := s.settingsRepo.ListWeeklyReportRecipients()
	if err != nil {
		log.Printf("[CRON] failed to list report recipients: %v", err)
		return
	}

	today := dates.Today()
	sent := 0
	for _, user := range recipients {
		snap, err := s.progressService.Load(user.ID, today)
		if err != nil {
			log.Printf("[CRON] failed to load progress for user %d: %v", user.ID, err)
			continue
		}
		analytics, err := s.progressService.Analytics(user.ID, today)
		if err != nil {
			log.Printf("[CRON] failed to compute analytics for user %d: %v", user.ID, err)
			continue
		}

		report := service.WeeklyReport{
			Streak:         snap.Progress.Streak,
			BestStreak:     snap.Progress.BestStreak,
			TotalCompleted: snap.Progress.TotalCompleted,
			SuccessRate:    analytics.SuccessRate,
		}
		if err := s.emailService.SendWeeklyReportEmail(ctx, user.Email, user.DisplayName, report); err != nil {
			log.Printf("[CRON] failed to email user %d: %v", user.ID, err)
			continue
		}
		sent++
	}
	log.Printf("[CRON] weekly reports sent: %d of %d", sent, len(recipients))
}
