package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/handlers"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/services/analysis"
	"github.com/ternarybob/calldigest/internal/services/llm"
	"github.com/ternarybob/calldigest/internal/services/market"
	"github.com/ternarybob/calldigest/internal/services/rag"
	"github.com/ternarybob/calldigest/internal/services/report"
	"github.com/ternarybob/calldigest/internal/services/tokenizer"
	"github.com/ternarybob/calldigest/internal/services/transcript"
	"github.com/ternarybob/calldigest/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Pipeline capabilities
	Tokenizer interfaces.Tokenizer
	Model     interfaces.LanguageModel
	Embedder  interfaces.EmbeddingClient

	// Pipeline services
	Processor       *transcript.Processor
	Retriever       *rag.Retriever
	Engine          *rag.Engine
	MarketService   interfaces.MarketDataService
	ReportService   interfaces.ReportService
	AnalysisService *analysis.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	AnalysisHandler *handlers.AnalysisHandler
	StatusHandler   *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database
	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize handlers
	app.initHandlers()

	logger.Info().
		Str("llm_mode", string(app.Model.Mode())).
		Str("embedding_mode", string(app.Embedder.Mode())).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes pipeline services in dependency order.
func (a *App) initServices() error {
	tok, err := tokenizer.NewService()
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	a.Tokenizer = tok

	a.Model = llm.NewLanguageModel(a.Config, a.Logger)
	a.Embedder = llm.NewEmbeddingClient(a.Config, a.Logger)

	p := a.Config.Processing
	a.Processor, err = transcript.NewProcessor(p.MaxChunkSize, p.MinChunkSize, p.ChunkOverlap, a.Tokenizer, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize transcript processor: %w", err)
	}

	a.Retriever = rag.NewRetriever(a.Embedder, a.Logger)

	// Temperature and max tokens follow the selected completion provider
	temperature := a.Config.Claude.Temperature
	maxTokens := a.Config.Claude.MaxTokens
	if a.Config.LLM.Provider == "openai" {
		temperature = a.Config.OpenAI.Temperature
		maxTokens = a.Config.OpenAI.MaxTokens
	}
	a.Engine = rag.NewEngine(a.Model, temperature, maxTokens, a.Logger)

	a.MarketService = market.NewService(&a.Config.Market, a.Logger)
	a.ReportService = report.NewService(a.Config.Reports.OutputDir, a.Logger)

	a.AnalysisService = analysis.NewService(
		a.Processor,
		a.Engine,
		a.Retriever,
		a.MarketService,
		a.StorageManager.AnalysisStorage(),
		p.TopK,
		a.Logger,
	)

	return nil
}

// initHandlers initializes HTTP handlers.
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.AnalysisService, a.ReportService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Config, a.Model, a.Embedder, a.AnalysisService, a.Logger)
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Model != nil {
		a.Model.Close()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	return nil
}
