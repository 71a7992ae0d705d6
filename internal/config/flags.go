package config

import (
	"flag"
)

// ParseFlags parses command-line flags and returns a Config.
// A -config file is applied first; flags set on the command line win over it.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	def := Default()
	var (
		configPath = fs.String("config", "", "YAML config file")
		checkDir   = fs.String("dir", def.CheckDir, "Directory containing *-check.json files")
		watch      = fs.Bool("watch", def.Watch, "Watch the check directory for new files")
		dbPath     = fs.String("db", def.Database, "SQLite archive path (empty disables the archive)")
		retention  = fs.Duration("retention", def.Retention, "Prune archived results older than this (0 keeps everything)")
		port       = fs.Int("port", def.Port, "Web server port")
		reportDir  = fs.String("report-dir", def.ReportDir, "Directory for generated reports (empty disables reports)")
		schedule   = fs.String("report-schedule", def.ReportSchedule, "Cron schedule for report generation")
		logLevel   = fs.String("log-level", def.LogLevel, "Log level")
		logFormat  = fs.String("log-format", def.LogFormat, "Log format: text or json")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *configPath != "" {
		if err := LoadFile(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.CheckDir = *checkDir
		case "watch":
			cfg.Watch = *watch
		case "db":
			cfg.Database = *dbPath
		case "retention":
			cfg.Retention = *retention
		case "port":
			cfg.Port = *port
		case "report-dir":
			cfg.ReportDir = *reportDir
		case "report-schedule":
			cfg.ReportSchedule = *schedule
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})
	return cfg, nil
}
