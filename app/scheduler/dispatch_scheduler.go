// Package scheduler
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	businessflow "github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/business_flow"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/config"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/redis/go-redis/v9"
)

// DispatchScheduler periodically picks up scheduled campaigns whose send time
// has passed and hands them to the campaign flow for delivery
type DispatchScheduler struct {
	campaignRepo repository.CampaignRepository
	campaignFlow businessflow.CampaignFlow
	rc           *redis.Client
	logger       *log.Logger
	interval     time.Duration
	batchSize    int

	logFile *os.File
}

// claim lock per campaign keeps multiple instances from double dispatching
const dispatchClaimTTL = 10 * time.Minute

func NewDispatchScheduler(
	campaignRepo repository.CampaignRepository,
	campaignFlow businessflow.CampaignFlow,
	rc *redis.Client,
	cfg config.CampaignConfig,
) *DispatchScheduler {
	interval := cfg.DispatchInterval
	if interval <= 0 {
		interval = time.Minute
	}
	batchSize := cfg.DispatchBatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	s := &DispatchScheduler{
		campaignRepo: campaignRepo,
		campaignFlow: campaignFlow,
		rc:           rc,
		interval:     interval,
		batchSize:    batchSize,
	}

	// Initialize scheduler-specific logger (to stdout and persistent file)
	if err := s.initSchedulerLogger(); err != nil {
		// Fallback to default stdout logger if file logger init fails
		s.logger = log.Default()
		s.logger.Printf("scheduler: failed to initialize file logger: %v", err)
	}

	return s
}

// initSchedulerLogger configures a logger that writes to both stdout and a persistent file under data/ (or /data)
func (s *DispatchScheduler) initSchedulerLogger() error {
	// Prefer relative data/ then fallback to /data for containerized environments
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		logPath := filepath.Join(dir, "scheduler.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			continue
		}
		s.logFile = f
		mw := io.MultiWriter(os.Stdout, f)
		s.logger = log.New(mw, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create scheduler log file in any candidate directory")
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *DispatchScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.close()
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *DispatchScheduler) runOnce(ctx context.Context) {
	due, err := s.campaignRepo.ListDueScheduled(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		s.logger.Printf("scheduler: list due campaigns failed: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Printf("scheduler: %d campaigns due for dispatch", len(due))

	for _, campaign := range due {
		if ctx.Err() != nil {
			return
		}
		if !s.claim(ctx, campaign.UUID.String()) {
			continue
		}

		start := time.Now()
		if err := s.campaignFlow.ExecuteScheduled(ctx, campaign); err != nil {
			s.logger.Printf("scheduler: dispatch failed for campaign uuid=%s: %v", campaign.UUID, err)
			s.release(ctx, campaign.UUID.String())
			continue
		}
		s.logger.Printf("scheduler: dispatched campaign uuid=%s in %s", campaign.UUID, time.Since(start))
	}
}

// claim takes a short-lived per-campaign lock so concurrent instances skip
// campaigns another instance is already dispatching
func (s *DispatchScheduler) claim(ctx context.Context, campaignUUID string) bool {
	if s.rc == nil {
		return true
	}
	key := fmt.Sprintf("dispatch:claim:%s", campaignUUID)
	ok, err := s.rc.SetNX(ctx, key, "1", dispatchClaimTTL).Result()
	if err != nil {
		s.logger.Printf("scheduler: claim failed for campaign uuid=%s: %v", campaignUUID, err)
		return false
	}
	return ok
}

func (s *DispatchScheduler) release(ctx context.Context, campaignUUID string) {
	if s.rc == nil {
		return
	}
	key := fmt.Sprintf("dispatch:claim:%s", campaignUUID)
	_ = s.rc.Del(ctx, key).Err()
}

func (s *DispatchScheduler) close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
