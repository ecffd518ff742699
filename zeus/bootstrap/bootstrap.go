// zeus/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"fmt"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/core"
	"zeus/zeus/config"
	"zeus/zeus/controllers"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/psql"
	"zeus/zeus/sources/psql/dao"
	"zeus/zeus/sources/storage"
	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
)

// App holds every long-lived dependency built from the environment.
type App struct {
	Cfg      config.Config
	Agent    *configs.AgentConfig
	VLM      *llm.VLMClient
	Router   *core.Router
	Uploader *storage.Uploader
	Analyzer *analysis.Analyzer
	Images   analysis.ImageGenerator
	DAO      *dao.AnalysisDAO
	Health   controllers.HealthInfo

	translator core.Translator
	db         *psql.Database
}

// New wires the app. Optional backends (object storage, database, Gemini)
// are only connected when configured.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Cfg: cfg}

	agentCfg := configs.Default()
	if cfg.KnowledgeFile != "" {
		loaded, err := configs.LoadConfig(cfg.KnowledgeFile)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.KnowledgeFile, err)
		}
		agentCfg = loaded
	}
	app.Agent = agentCfg

	app.VLM = llm.NewVLMClient(cfg.VLMBaseURL, cfg.VLMAPIKey)
	if cfg.TranslateURL != "" {
		app.translator = llm.NewHTTPTranslator(cfg.TranslateURL)
	} else {
		app.translator = llm.NewModelTranslator(app.VLM, cfg.VLMModel)
	}
	app.Router = core.NewRouter(core.NewKnowledge(agentCfg), app.VLM, app.translator, cfg.VLMModel)

	app.Health.Storage = "inline"
	var store storage.ObjectStore
	if cfg.MinIOEnabled() {
		mc, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store = mc
		app.Health.Storage = "minio"
	}
	app.Uploader = storage.NewUploader(store)

	var recorder analysis.Recorder
	if cfg.DBEnabled() {
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		app.db = db
		app.DAO = dao.NewAnalysisDAO(db.DB)
		recorder = app.DAO
		app.Health.History = true
	}

	var gemini *llm.GeminiClient
	needGemini := cfg.AnalyzerBackend == "gemini" || cfg.ImageBackend == "gemini"
	if needGemini {
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini backend selected but GEMINI_API_KEY is not set")
		}
		g, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiImageModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		gemini = g
	}

	var backend analysis.Backend = analysis.NewVLMBackend(app.VLM, cfg.VLMModel, app.Uploader)
	if cfg.AnalyzerBackend == "gemini" {
		backend = analysis.NewGeminiBackend(gemini)
	}
	app.Analyzer = analysis.NewAnalyzer(agentCfg, backend, recorder)
	app.Health.Analyzer = backend.Name()

	if cfg.ImageBackend == "gemini" {
		app.Images = gemini
		app.Health.Images = "gemini"
	} else {
		app.Images = llm.NewHFImageClient(cfg.HFToken, cfg.ImageModel)
		app.Health.Images = "hf"
	}

	logging.AppLogger.Info("zeus wired",
		zap.String("storage", app.Health.Storage),
		zap.Bool("history", app.Health.History),
		zap.String("analyzer", app.Health.Analyzer),
		zap.String("images", app.Health.Images),
		zap.Int("knowledge_entries", len(agentCfg.Knowledge)),
	)
	return app, nil
}

// Translator is the translator the router uses, exposed for the translate endpoint.
func (a *App) Translator() core.Translator {
	return a.translator
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
