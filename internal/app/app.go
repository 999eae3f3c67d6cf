package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"alchemy/internal/config"
	"alchemy/internal/services"
	"alchemy/internal/store"
	"alchemy/internal/store/local"
	"alchemy/internal/store/primary"
	"alchemy/pkg/alchemydatanews"
	"alchemy/pkg/alchemylanguage"
	"alchemy/pkg/languagetranslation"
	"alchemy/pkg/watson"
)

// App holds the clients, stores and services shared by every command.
type App struct {
	Config *config.Config

	// Watson clients
	Language    *alchemylanguage.Service
	News        *alchemydatanews.Service
	Translation *languagetranslation.Service

	Results   store.ResultStore
	JobClient store.JobClient // nil when redis.address is empty

	AnalysisService *services.AnalysisService
}

// NewApp wires the Watson clients and the migrated result store. The job
// queue is connected only when Redis is configured.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.initClients()
	if err := app.initResultStore(ctx); err != nil {
		return nil, err
	}
	app.initJobClient()
	app.AnalysisService = services.NewAnalysisService(app.Language, app.News, app.Translation, app.Results)

	log.Debug("Application initialization complete.")
	return app, nil
}

func (a *App) initClients() {
	httpClient := &http.Client{Timeout: a.Config.HTTP.Timeout}
	logger := log.StandardLogger()

	alchemyCfg := watson.Config{
		BaseURL:    a.Config.Alchemy.BaseURL,
		APIKey:     a.Config.Alchemy.APIKey,
		HTTPClient: httpClient,
		Logger:     logger,
	}
	a.Language = alchemylanguage.New(alchemyCfg)
	a.News = alchemydatanews.New(alchemyCfg)
	a.Translation = languagetranslation.New(watson.Config{
		BaseURL:    a.Config.Translation.BaseURL,
		APIKey:     a.Config.Translation.APIKey,
		HTTPClient: httpClient,
		Logger:     logger,
	})
}

// initResultStore picks the history backend from database.dsn.
func (a *App) initResultStore(ctx context.Context) error {
	dsn := strings.TrimSpace(a.Config.Database.DSN)

	var (
		results store.ResultStore
		err     error
	)
	switch {
	case dsn == "":
		log.Info("database.dsn is empty, analysis history is disabled")
		a.Results = store.NoopStore{}
		return nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		results, err = primary.NewPrimaryStore(ctx, dsn)
	default:
		results, err = local.NewLocalStore(ctx, dsn)
	}
	if err != nil {
		return fmt.Errorf("init result store: %w", err)
	}
	if err := results.Migrate(ctx); err != nil {
		results.Close()
		return fmt.Errorf("migrate result store: %w", err)
	}
	a.Results = results
	return nil
}

func (a *App) initJobClient() {
	if a.Config.Redis.Address == "" {
		log.Debug("redis.address is empty, background jobs are disabled")
		return
	}
	a.JobClient = store.NewAsynqJobClient(a.RedisOpt())
}

// RedisOpt is the asynq connection shared by the job client and the worker.
func (a *App) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}
}

// Close releases the store and the job client.
func (a *App) Close() error {
	var firstErr error
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			firstErr = err
		}
	}
	if a.Results != nil {
		if err := a.Results.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
