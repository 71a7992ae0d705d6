package checkfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"statuspage/internal/models"
)

// SubmitFunc receives the decoded results of one check file. Watch may call
// it from several goroutines at once.
type SubmitFunc func(file string, results []*models.Result)

const debounceDelay = 250 * time.Millisecond

// Source reads check files from a directory
type Source struct {
	dir string
	log logrus.FieldLogger
}

// NewSource creates a Source for dir
func NewSource(dir string, log logrus.FieldLogger) *Source {
	return &Source{dir: dir, log: log.WithField("dir", dir)}
}

// Scan loads every check file currently in the directory. Files are read
// concurrently and submitted in name order once all reads finish; check
// files are named by their timestamp, so this is also check order.
func (s *Source) Scan(ctx context.Context, submit SubmitFunc) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read check dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && IsCheckFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	loaded := make([][]*models.Result, len(names))
	ok := make([]bool, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			loaded[i], ok[i] = s.read(name)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for i, name := range names {
		if ok[i] {
			submit(name, loaded[i])
		}
	}
	s.log.WithField("files", len(names)).Info("Scanned check directory")

	return nil
}

// Watch submits check files as they are created or rewritten, until ctx is done
func (s *Source) Watch(ctx context.Context, submit SubmitFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	s.log.Info("Watching for new check files")

	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	// editors and uploaders write in several steps; wait for quiet
	schedule := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[name]; ok {
			t.Stop()
		}
		timers[name] = time.AfterFunc(debounceDelay, func() {
			mu.Lock()
			delete(timers, name)
			mu.Unlock()
			if ctx.Err() == nil {
				s.load(name, submit)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if !IsCheckFile(name) || event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			schedule(name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WithError(err).Warn("Check file watcher error")
		}
	}
}

func (s *Source) load(name string, submit SubmitFunc) {
	if results, ok := s.read(name); ok {
		submit(name, results)
	}
}

func (s *Source) read(name string) ([]*models.Result, bool) {
	log := s.log.WithField("file", name)

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		log.WithError(err).Error("Failed to open check file")
		return nil, false
	}
	defer f.Close()

	results, err := Decode(f)
	if err != nil {
		log.WithError(err).Error("Failed to decode check file")
		return nil, false
	}

	log.WithField("results", len(results)).Debug("Loaded check file")
	return results, true
}
