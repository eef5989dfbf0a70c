// Package jobs runs the bot's background tasks on a cron schedule.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
)

// Scheduler owns the cron instance and the jobs it runs: expiring idle
// browsers and polling reddit feed subscriptions.
type Scheduler struct {
	cron *cron.Cron
	bot  *bot.Bot
}

// NewScheduler wires the jobs but does not start them.
func NewScheduler(b *bot.Bot) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		bot:  b,
	}
}

// Start registers and launches all jobs.
func (s *Scheduler) Start() error {
	// Idle browser sweep
	if _, err := s.cron.AddFunc("@every 1m", func() {
		if n := s.bot.Browsers.Sweep(s.bot.Client); n > 0 {
			log.Debugf("swept %d idle browsers", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling browser sweep: %w", err)
	}

	// Reddit feed polling
	spec := fmt.Sprintf("@every %s", s.bot.Cfg.RedditPollInterval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.bot.Feeds.Check(s.bot.Client)
	}); err != nil {
		return fmt.Errorf("scheduling feed poll: %w", err)
	}

	s.cron.Start()
	log.Info("job scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("job scheduler stopped")
}
