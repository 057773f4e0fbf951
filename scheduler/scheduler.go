// Package scheduler provides automated reference-data reloads and health
// monitoring for the prescriptions API. It handles the initial catalog load,
// a daily cron-based reload to pick up operator overrides, and coordinates
// the atomic swap with the data container using dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ManolyaGambira/prescriptions-api/interfaces"
	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/matcher"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleDataAge is how old the catalog may get before the monitor warns.
// Reloads run daily, so anything over 25h means a reload was missed.
const staleDataAge = 25 * time.Hour

// Scheduler handles catalog reloads and health monitoring using dependency
// injection.
type Scheduler struct {
	store     interfaces.CatalogStore
	loader    interfaces.CatalogLoader
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(store interfaces.CatalogStore, loader interfaces.CatalogLoader) *Scheduler {
	return &Scheduler{
		store:     store,
		loader:    loader,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial catalog load and schedules the daily reload.
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	// Reload daily at 06:00 to pick up reference-data overrides
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload catalog", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()

	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reload builds a fresh catalog and matcher and swaps both in atomically.
// Requests keep being served from the old catalog until the swap.
func (s *Scheduler) reload() error {
	// Prevent concurrent reloads
	if !s.store.BeginReload() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.store.EndReload()

	logging.Info("Starting catalog reload", "at", time.Now().Format(time.RFC3339))
	start := time.Now()

	catalog, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	s.store.UpdateData(catalog, matcher.New(catalog))

	logging.Info("Catalog reload completed",
		"duration", time.Since(start).String(),
		"drugs", catalog.DrugCount(),
		"interactions", catalog.InteractionCount(),
		"dosages", catalog.DosageCount())

	return nil
}

// startHealthMonitoring warns hourly when the catalog has not been
// refreshed within the expected window.
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			loadedAt := s.store.GetLoadedAt()
			if time.Since(loadedAt) > staleDataAge {
				logging.Warn("Catalog has not been reloaded in over 25 hours",
					"loaded_at", loadedAt.Format(time.RFC3339))
			}
		}
	}()
}
