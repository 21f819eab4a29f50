// Package bootstrap wires configuration into the services shared by the
// server and the operator CLI.
package bootstrap

import (
	"context"
	"net/http"

	"zara/zara/config"
	"zara/zara/controllers"
	"zara/zara/services/auth"
	"zara/zara/services/llm"
	"zara/zara/services/mirror"
	"zara/zara/sources/rdb"
	"zara/zara/sources/rdb/dao"
	"zara/zara/sources/storage"
	"zara/zara/utils/logging"

	"go.uber.org/zap"
)

type App struct {
	Config  config.Config
	Persona *config.Persona
	DB      *rdb.Database
	Users   *dao.UserDAO
	Chats   *dao.ChatDAO
	Tokens  *auth.TokenService
	Chain   *llm.Chain
	Sink    mirror.Sink
}

// New opens the database and builds every collaborator. Optional mirrors that
// fail to start are logged and skipped.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	persona, err := config.LoadPersona(cfg.PersonaFile)
	if err != nil {
		return nil, err
	}
	db, err := rdb.NewDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logging.AppLogger.Warn("JWT_SECRET_KEY not set, using the built-in development secret")
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &App{
		Config:  cfg,
		Persona: persona,
		DB:      db,
		Users:   dao.NewUserDAO(db.DB),
		Chats:   dao.NewChatDAO(db.DB),
		Tokens:  tokens,
		Chain:   llm.NewChain(NewCompleter(cfg, persona), persona.Models),
		Sink:    NewSink(ctx, cfg),
	}, nil
}

func NewCompleter(cfg config.Config, persona *config.Persona) llm.Completer {
	if !cfg.ProviderConfigured() {
		logging.AppLogger.Warn("CEREBRAS_API_KEY not set, replies will use fallback mode")
		return llm.Unconfigured{}
	}
	logging.AppLogger.Info("completion provider configured", zap.String("base_url", cfg.ProviderBaseURL), zap.Strings("models", persona.Models))
	return llm.NewOpenAIClient(cfg.ProviderAPIKey, cfg.ProviderBaseURL, cfg.ProviderTimeout, persona.Sampling)
}

func NewSink(ctx context.Context, cfg config.Config) mirror.Sink {
	var sinks []mirror.Sink
	if cfg.SupabaseEnabled() {
		sinks = append(sinks, mirror.NewSupabaseSink(cfg.SupabaseURL, cfg.SupabaseKey, &http.Client{Timeout: cfg.MirrorTimeout}))
		logging.AppLogger.Info("supabase mirror enabled")
	}
	if cfg.MinIOEnabled() {
		minioSink, err := storage.NewMinIOSink(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio mirror disabled", zap.Error(err))
		} else {
			sinks = append(sinks, minioSink)
			logging.AppLogger.Info("minio mirror enabled", zap.String("bucket", cfg.MinIOBucket))
		}
	}
	return mirror.Combine(sinks...)
}

func (a *App) ChatController() *controllers.ChatController {
	return controllers.NewChatController(a.Chats, a.Users, a.Chain, a.Sink, a.Persona, a.Config.MirrorTimeout)
}

func (a *App) Close() {
	a.DB.Close()
}
