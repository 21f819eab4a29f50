package bootstrap

import (
	"context"
	"testing"

	"zara/zara/config"
	"zara/zara/services/llm"
	"zara/zara/services/mirror"
)

func TestNewCompleter(t *testing.T) {
	persona, _ := config.LoadPersona("")
	if _, ok := NewCompleter(config.Config{}, persona).(llm.Unconfigured); !ok {
		t.Error("expected Unconfigured completer without an API key")
	}
	cfg := config.Config{ProviderAPIKey: "k", ProviderBaseURL: "http://localhost:1/v1"}
	if _, ok := NewCompleter(cfg, persona).(*llm.OpenAIClient); !ok {
		t.Error("expected OpenAI client with an API key")
	}
}

func TestNewSinkDefaultsToNop(t *testing.T) {
	if _, ok := NewSink(context.Background(), config.Config{}).(mirror.Nop); !ok {
		t.Error("expected Nop sink when no mirror is configured")
	}
	cfg := config.Config{SupabaseURL: "http://localhost:1", SupabaseKey: "k"}
	if _, ok := NewSink(context.Background(), cfg).(*mirror.SupabaseSink); !ok {
		t.Error("expected a lone Supabase sink")
	}
}
