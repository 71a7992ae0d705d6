package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"statuspage/internal/checkfile"
	"statuspage/internal/config"
	"statuspage/internal/dashboard"
	"statuspage/internal/database"
	"statuspage/internal/logging"
	"statuspage/internal/models"
	"statuspage/internal/report"
	"statuspage/internal/web"
)

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Status page failed")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	// Initialize the optional archive
	var archive models.Archive
	if cfg.Database != "" {
		db, err := database.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize database schema: %w", err)
		}
		archive = db
	}

	session := dashboard.New(log, archive, cfg.Retention)
	if err := session.Restore(); err != nil {
		return err
	}
	session.Start()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Watch first so files written during the scan are not missed;
	// the session drops files it has already loaded.
	source := checkfile.NewSource(cfg.CheckDir, log)
	if cfg.Watch {
		go func() {
			if err := source.Watch(ctx, session.Submit); err != nil {
				log.WithError(err).Error("Watching check directory failed")
			}
		}()
	}
	if err := source.Scan(ctx, session.Submit); err != nil && ctx.Err() == nil {
		return err
	}

	var generator *report.Generator
	if cfg.ReportDir != "" {
		generator = report.NewGenerator(session, log)
		scheduler, err := generator.Schedule(cfg.ReportSchedule, cfg.ReportDir)
		if err != nil {
			return err
		}
		defer func() {
			<-scheduler.Stop().Done()
		}()
	}

	webServer := web.New(session, cfg.Port, log)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- webServer.Start()
	}()

	log.WithFields(logrus.Fields{"dir": cfg.CheckDir, "watch": cfg.Watch}).Info("Status page started")
	log.Infof("Web interface available at http://localhost:%d", cfg.Port)

	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("Web server failed")
		}
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := webServer.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("Web server shutdown")
	}

	session.Stop()
	session.Wait()

	if generator != nil {
		if err := generator.Generate(cfg.ReportDir); err != nil {
			log.WithError(err).Error("Final report failed")
		}
	}
	return nil
}
