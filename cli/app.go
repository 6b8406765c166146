package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ragsynth/go-ragsynth/index"
	"github.com/ragsynth/go-ragsynth/llm"
	"github.com/ragsynth/go-ragsynth/service"
	"github.com/ragsynth/go-ragsynth/storage/docstore"
	"github.com/ragsynth/go-ragsynth/storage/kvstore"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

// app bundles the collaborators a command needs, built once per
// invocation from the project configuration.
type app struct {
	cfg       *Config
	kv        kvstore.KVStore
	docs      *docstore.DocumentStore
	retriever index.Retriever
	logger    *slog.Logger
}

// newApp loads the configuration under root and opens the configured
// backends.
func newApp(root string) (*app, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}

	kv, err := openKVStore(cfg, root)
	if err != nil {
		return nil, err
	}

	docs, err := docstore.NewDocumentStore(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		kv:        kv,
		docs:      docs,
		retriever: newRetriever(cfg),
		logger:    slog.Default(),
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// serviceContext builds the predictor and prompt helper for queries.
func (a *app) serviceContext() (*service.Context, error) {
	predictor, err := newPredictor(a.cfg)
	if err != nil {
		return nil, err
	}
	return service.FromPredictor(predictor)
}

func openKVStore(cfg *Config, root string) (kvstore.KVStore, error) {
	switch cfg.StoreType {
	case "bolt":
		return kvstore.NewBoltKVStore(cfg.StorePath(root))
	default:
		return kvstore.NewJSONKVStore(cfg.StorePath(root))
	}
}

func newRetriever(cfg *Config) index.Retriever {
	if cfg.IndexType == "keyword" {
		return index.NewKeywordRetriever(index.DefaultKeywordTopK)
	}
	return index.NewListRetriever()
}

func newPredictor(cfg *Config) (llm.Predictor, error) {
	switch cfg.PredictorType {
	case "mock":
		return llm.NewMockPredictor(), nil
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("config: OPENAI_API_KEY must be set for the default predictor")
		}
		tokenizer, err := textsplitter.DefaultTokenizer()
		if err != nil {
			return nil, fmt.Errorf("config: failed to load tokenizer: %w", err)
		}
		model := llm.NewOpenAILLM(os.Getenv("OPENAI_BASE_URL"), cfg.Model, apiKey)
		return llm.NewLLMPredictor(model, tokenizer, model.Metadata()), nil
	}
}
