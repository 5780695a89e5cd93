// Package scheduler triggers periodic background work on cron schedules.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/circulation/internal/tasks"
)

// OverdueScanScheduler enqueues the nightly overdue scan and the audit
// retention cleanup on the task queue.
type OverdueScanScheduler struct {
	taskClient    *tasks.Client
	schedule      string
	retentionDays int

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueScanScheduler creates a scheduler firing on the given cron
// schedule (standard five-field format).
func NewOverdueScanScheduler(taskClient *tasks.Client, schedule string, retentionDays int) *OverdueScanScheduler {
	return &OverdueScanScheduler{
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule. Safe to call once; later calls are no-ops.
func (s *OverdueScanScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.enqueue)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue scan '%s': %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue scan scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the schedule; a scan already handed to the task queue keeps
// running there.
func (s *OverdueScanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	log.Printf("Overdue scan scheduler: stopped")
}

func (s *OverdueScanScheduler) enqueue() {
	if _, err := s.taskClient.Add(tasks.OverdueScanTask{}).Save(); err != nil {
		log.Printf("Failed to enqueue overdue scan: %v", err)
	}
	if _, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}).Save(); err != nil {
		log.Printf("Failed to enqueue audit cleanup: %v", err)
	}
}
