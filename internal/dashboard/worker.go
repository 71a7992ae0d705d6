package dashboard

import (
	"github.com/sirupsen/logrus"

	"statuspage/internal/models"
)

// Submit queues a decoded check file for processing. Safe for concurrent use.
func (s *Session) Submit(file string, results []*models.Result) {
	select {
	case s.incoming <- checkFile{name: file, results: results}:
	case <-s.ctx.Done():
		s.log.WithField("file", file).Debug("Session stopped, dropping check file")
	}
}

// processFiles applies queued check files one at a time
func (s *Session) processFiles() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return
		case f := <-s.incoming:
			s.process(f)
		}
	}
}

// drain processes files already accepted by Submit
func (s *Session) drain() {
	for {
		select {
		case f := <-s.incoming:
			s.process(f)
		default:
			return
		}
	}
}

func (s *Session) process(f checkFile) {
	log := s.log.WithField("file", f.name)

	if s.seen(f.name) {
		log.Debug("Check file already loaded")
		return
	}

	if s.archive != nil {
		archived, err := s.archive.HasFile(f.name)
		if err != nil {
			log.WithError(err).Error("Failed to look up check file in archive")
		}
		if archived {
			log.Debug("Check file already archived")
			return
		}
		if err := s.archive.SaveFile(f.name, f.results); err != nil {
			log.WithError(err).Error("Failed to archive check file")
		}
	}

	s.Ingest(f.name, f.results)
	log.WithFields(logrus.Fields{"results": len(f.results)}).Info("Ingested check file")
}

// seen marks a file as loaded and reports whether it already was
func (s *Session) seen(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files[name] {
		return true
	}
	s.files[name] = true
	return false
}
