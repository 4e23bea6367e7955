package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/studycal/internal/cli"
	"github.com/alexanderramin/studycal/internal/db"
	"github.com/alexanderramin/studycal/internal/intelligence"
	"github.com/alexanderramin/studycal/internal/llm"
	"github.com/alexanderramin/studycal/internal/logger"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/server"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Determine home directory: env var or default ~/.studycal
	home := os.Getenv("STUDYCAL_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".studycal")
	}

	dbPath := os.Getenv("STUDYCAL_DB")
	if dbPath == "" {
		dbPath = filepath.Join(home, "studycal.db")
	}

	debug, _ := strconv.ParseBool(os.Getenv("STUDYCAL_LOG_DEBUG"))
	log, closeLog, err := logger.New(logger.Config{Debug: debug, Dir: home})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog.Close()

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and unit of work
	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(log)

	// HTML extraction needs an LLM; without one FromHTML reports it as disabled.
	var extractor intelligence.CourseExtractService
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(log)
		}
		client, err := llm.NewClient(ctx, llmCfg, llmObserver)
		if err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
		extractor = intelligence.NewCourseExtractService(client)
	}

	serverCfg := server.DefaultConfig()
	if addr := os.Getenv("STUDYCAL_ADDR"); addr != "" {
		serverCfg.Addr = addr
	}

	app := &cli.App{
		Plans:  service.NewPlanService(planRepo, uow, observer),
		Ingest: service.NewIngestService(extractor, observer),
		Logger: log,
		Server: serverCfg,
	}

	// Wizards, spinners and the pager only run on a terminal.
	app.IsInteractive = func() bool {
		return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
			(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	}

	log.Debug("studycal starting", "home", home, "db", dbPath, "llm", llmCfg.Enabled, "provider", string(llmCfg.Provider))

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
