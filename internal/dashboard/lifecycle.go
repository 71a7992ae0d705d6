package dashboard

import (
	"fmt"
	"time"
)

// Restore replays the archive into the session
func (s *Session) Restore() error {
	if s.archive == nil {
		return nil
	}

	files, err := s.archive.LoadAll()
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	for _, f := range files {
		s.seen(f.Name)
		s.Ingest(f.Name, f.Results)
	}

	s.log.WithField("files", len(files)).Info("Restored check files from archive")
	return nil
}

// Start begins processing submitted check files
func (s *Session) Start() {
	s.wg.Add(1)
	go s.processFiles()

	if s.archive != nil && s.retention > 0 {
		s.wg.Add(1)
		go s.maintenanceWorker()
	}
}

// Stop gracefully stops the session
func (s *Session) Stop() {
	s.log.Info("Stopping session...")
	s.cancel()
}

// Wait blocks until all goroutines finish
func (s *Session) Wait() {
	s.wg.Wait()
	s.log.Info("Session stopped")
}

// maintenanceWorker prunes the archive past the retention window
func (s *Session) maintenanceWorker() {
	defer s.wg.Done()

	// Run maintenance every hour
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// Run immediately on start
	s.performMaintenance()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.performMaintenance()
		}
	}
}

func (s *Session) performMaintenance() {
	cutoff := time.Now().Add(-s.retention).UnixNano()
	removed, err := s.archive.Prune(cutoff)
	if err != nil {
		s.log.WithError(err).Error("Failed to prune archive")
		return
	}
	s.log.WithField("removed", removed).Info("Archive maintenance complete")
}
