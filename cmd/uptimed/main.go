package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jroosing/apphelpers/internal/buildinfo"
	"github.com/jroosing/apphelpers/internal/config"
	"github.com/jroosing/apphelpers/internal/logging"
	"github.com/jroosing/apphelpers/internal/server"
)

// Set at link time, e.g.
//
//	-ldflags "-X 'main.buildDate=Apr 21 2020' -X main.buildTime=21:22:23"
var (
	buildDate string
	buildTime string
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set UPTIMED_CONFIG)")
		source     = flag.String("source", "", "Override tick source (monotonic, host, process)")
		interval   = flag.Duration("interval", 0, "Override sampling interval")
		offsetMs   = flag.Int("offset-ms", -1, "Override raw tick offset in milliseconds (-1 keeps config)")
		dbPath     = flag.String("db", "", "Override SQLite history path")
		resume     = flag.Bool("resume", false, "Resume the accumulator from the last checkpoint")
		apiPort    = flag.Int("api-port", 0, "Override API port")
		noAPI      = flag.Bool("no-api", false, "Disable the REST API")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *source != "" {
		cfg.Sampler.Source = *source
	}
	if *interval != 0 {
		cfg.Sampler.Interval = *interval
	}
	if *offsetMs >= 0 {
		cfg.Sampler.OffsetMs = *offsetMs
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *resume {
		cfg.Sampler.Resume = true
	}
	if *apiPort != 0 {
		cfg.API.Port = *apiPort
	}
	if *noAPI {
		cfg.API.Enabled = false
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("uptimed starting",
		"source", cfg.Sampler.Source,
		"interval", cfg.Sampler.Interval,
		"database", cfg.Database.Path,
		"api", cfg.API.Enabled,
	)

	runner := server.NewRunner(logger)
	if built, ok := parseBuildStamp(); ok {
		runner.SetBuildTime(built)
		logger.Info("build", "time", built, "weekday", built.Weekday())
	} else if buildDate != "" {
		logger.Warn("ignoring malformed build stamp", "date", buildDate, "time", buildTime)
	}

	if err := runner.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "uptimed exited with error: %v\n", err)
		os.Exit(1)
	}
}

func parseBuildStamp() (time.Time, bool) {
	if buildDate == "" || buildTime == "" {
		return time.Time{}, false
	}
	dt, err := buildinfo.ParseDateTime(buildDate, buildTime)
	if err != nil {
		return time.Time{}, false
	}
	return dt.Time(), true
}
