package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/codeclash-games/codeclash/internal/arena"
	"github.com/codeclash-games/codeclash/internal/arena/judge"
	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/codeclash-games/codeclash/internal/buildinfo"
	"github.com/codeclash-games/codeclash/internal/cache"
	"github.com/codeclash-games/codeclash/internal/database"
	matchDb "github.com/codeclash-games/codeclash/internal/database/match/database"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/codeclash-games/codeclash/internal/server"
	"github.com/codeclash-games/codeclash/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		buildinfo.GreetingCLI,
		buildinfo.ProjectName,
		buildinfo.ProjectVersion,
		buildinfo.GithubURL,
	)

	ctx, done := shutdown.New()
	defer done()
	logger := logging.FromContext(ctx)
	if err := realMain(ctx, done); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, done func()) error {
	config := arena.Config{}
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("processing the config: %v", err)
	}

	ctx = logging.WithLogger(ctx, logging.NewLogger(config.Debug))
	logger := logging.FromContext(ctx)

	db, err := database.NewFromEnv(ctx, &config.DB)
	if err != nil {
		return fmt.Errorf("new database from env: %v", err)
	}

	defer db.Close(ctx)

	historyCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %v", err)
	}

	bank, err := loadBank(config.ProblemsPath)
	if err != nil {
		return fmt.Errorf("loading problem bank: %v", err)
	}

	logger.Infof("problem bank loaded, %d problems", bank.Len())

	history := matchDb.New(db, historyCache)
	hub := server.NewHub()
	manager := arena.NewManager(&config, bank, &judge.Local{}, history, hub)

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %v", err)
	}

	router := server.NewRouter(hub, manager, history)
	router.Handle("/healthz", server.HandleHealth(ctx))

	go func() {
		if err := srv.ServeHTTP(ctx, &http.Server{Handler: router}); err != nil {
			logger.Errorf("srv.ServeHTTP: %v", err)
			done()
		}
	}()

	go func() {
		if err := http.ListenAndServe(":"+config.ProfPort, nil); err != nil {
			logger.Errorf("pprof default server: %v", err)
			done()
		}
	}()

	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("run: %v", err)
	}

	return nil
}

func loadBank(path string) (*problems.Bank, error) {
	if path == "" {
		return problems.DefaultBank(), nil
	}
	return problems.LoadFile(path)
}
