package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"faqbot/internal/chatbot"
	"faqbot/internal/completion/openai"
	"faqbot/internal/config"
	"faqbot/internal/corpus"
	"faqbot/internal/domain"
	"faqbot/internal/index"
	"faqbot/internal/server"
	"faqbot/internal/textproc"
	"faqbot/internal/vectorstore/memory"
	"faqbot/internal/vectorstore/qdrant"
	"faqbot/internal/watcher"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	var cfgPath, corpusPath, addr string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/faqbot/config.yaml if not provided)")
	flag.StringVar(&corpusPath, "corpus", "", "Path to FAQ corpus JSON (overrides config)")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	bot, c, err := buildBot(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	log.Printf("[INFO] corpus loaded: %d entries, %d categories", c.Len(), len(c.Categories()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Corpus.Watch {
		w, err := watcher.New(cfg.Corpus.Path)
		if err != nil {
			log.Fatalf("corpus watcher init failed: %v", err)
		}
		defer w.Close()
		go w.Run(ctx, func(path string) error {
			fresh, err := corpus.LoadFile(path)
			if err != nil {
				return err
			}
			return bot.Reload(fresh)
		})
		log.Printf("[INFO] watching %s for changes", cfg.Corpus.Path)
	}

	router := server.BuildRouter(server.New(bot, "faqbot", version))
	log.Printf("[INFO] listening on %s", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}

// buildBot assembles the full engine from config: corpus, normalizer,
// vector store, completion backend and the hybrid service.
func buildBot(cfg *config.AppConfig) (*chatbot.Service, *corpus.Corpus, error) {
	c, err := corpus.LoadFile(cfg.Corpus.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	normalizer, err := textproc.New()
	if err != nil {
		log.Printf("[WARN] linguistic resources unavailable, using degraded normalization: %v", err)
		normalizer = textproc.NewDegraded()
	}

	newStorage, err := storageFactory(cfg)
	if err != nil {
		return nil, nil, err
	}

	var completer domain.Completer
	switch cfg.Completion.Type {
	case "openai", "":
		if cfg.Completion.OpenAI == nil {
			return nil, nil, fmt.Errorf("openai completion config missing")
		}
		completer, err = openai.NewClient(openai.Config{
			BaseURL:     cfg.Completion.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Completion.OpenAI.APIKeyEnv,
			Model:       cfg.Completion.OpenAI.Model,
			Temperature: cfg.Completion.OpenAI.Temperature,
			MaxTokens:   cfg.Completion.OpenAI.MaxTokens,
			Timeout:     time.Duration(cfg.Completion.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("completion backend init failed: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unknown completion backend: %s", cfg.Completion.Type)
	}

	build := func(c *corpus.Corpus) (*index.Index, error) {
		return index.Build(c, index.NewTFIDF(normalizer), newStorage())
	}
	bot, err := chatbot.New(c, build, completer, chatbot.Options{
		LocalMatchThreshold: *cfg.Matcher.LocalMatchThreshold,
		ContextThreshold:    cfg.Matcher.ContextThreshold,
		ContextTopK:         cfg.Matcher.ContextTopK,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}
	return bot, c, nil
}

// storageFactory returns a constructor so every index rebuild gets a
// fresh store.
func storageFactory(cfg *config.AppConfig) (func() domain.Storage, error) {
	switch cfg.VectorStore.Type {
	case "memory", "":
		return func() domain.Storage { return memory.New() }, nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		qcfg := qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}
		return func() domain.Storage { return qdrant.New(qcfg) }, nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}
