package app

import (
	"context"
	"fmt"

	"tasnif/internal/config"
	"tasnif/internal/services"
	"tasnif/internal/store"
	"tasnif/internal/store/primary"
	"tasnif/pkg/classifier"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Config    *config.Config
	JobClient store.JobClient

	// Expose individual store interfaces for service initialization
	TaxonomyStore store.TaxonomyStore
	TopicStore    store.TopicStore
	SessionStore  store.SessionStore
	JobStore      store.JobStore

	// Engine is the configured primary engine; RuleEngine always exists and
	// doubles as the fallback when the primary is LLM-backed.
	Engine     classifier.Engine
	RuleEngine *classifier.RuleEngine

	// --- Initialized Services ---
	TaxonomyService       *services.TaxonomyService
	ClassificationService *services.ClassificationService
	TopicService          *services.TopicService
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initEngines(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initCoreServices()

	log.Debug("application initialization complete")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.TaxonomyStore = ps
	a.TopicStore = ps
	a.SessionStore = ps
	a.JobStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.Config.Redis.Address, a.JobStore)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initEngines(ctx context.Context) error {
	cfg := a.Config

	tables, err := config.LoadRules(cfg.Classifier.RulesFile)
	if err != nil {
		return fmt.Errorf("init rule engine: %w", err)
	}
	a.RuleEngine = classifier.NewRuleEngine(tables)
	a.Engine = a.RuleEngine

	if cfg.Classifier.Engine != "llm" {
		return nil
	}

	prompt := ""
	if cfg.Classifier.PromptTemplate != "" {
		prompt, err = config.LoadPromptContent(cfg.Classifier.PromptTemplate, "classify.txt")
		if err != nil {
			log.Warnf("failed to load classification prompt: %v, using the built-in template", err)
			prompt = ""
		}
	}

	switch cfg.Classifier.Provider {
	case "openai":
		client := openai.NewClient(cfg.Classifier.OpenaiApiKey)
		a.Engine = classifier.NewLLMEngine(client, cfg.Classifier.Model, prompt)
	case "gemini":
		engine, err := services.NewGeminiEngine(ctx, cfg.Classifier.GoogleApiKey, cfg.Classifier.Model, prompt)
		if err != nil {
			return fmt.Errorf("init gemini engine: %w", err)
		}
		a.Engine = engine
	default:
		return fmt.Errorf("unknown classifier provider: %s", cfg.Classifier.Provider)
	}
	log.Infof("LLM classification engine enabled (provider: %s, model: %s)", cfg.Classifier.Provider, cfg.Classifier.Model)
	return nil
}

func (a *App) initCoreServices() {
	a.TaxonomyService = services.NewTaxonomyService(a.TaxonomyStore)

	// The rule engine backs up an LLM primary; a rules-only setup needs no
	// fallback.
	var fallback classifier.Engine
	if _, ok := a.Engine.(*classifier.RuleEngine); !ok {
		fallback = a.RuleEngine
	}
	a.ClassificationService = services.NewClassificationService(a.SessionStore, a.TaxonomyService, a.Engine, fallback)
	a.TopicService = services.NewTopicService(a.TopicStore, a.TaxonomyService, a.Engine, a.JobClient)
}

func (a *App) cleanupPartialInit() {
	if a.JobClient != nil {
		a.JobClient.Close()
	}
	if e, ok := a.Engine.(interface{ Close() error }); ok && e != nil {
		if err := e.Close(); err != nil {
			log.WithError(err).Warn("error closing classification engine")
		}
	}
}

// Close releases the app's long-lived resources.
func (a *App) Close() {
	a.cleanupPartialInit()
	if ps, ok := a.TaxonomyStore.(*primary.StoreImpl); ok {
		ps.Close()
	}
}
