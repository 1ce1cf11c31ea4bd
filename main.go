package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/bassamadnan/mailbrief/config"
	"github.com/bassamadnan/mailbrief/gmail"
	"github.com/bassamadnan/mailbrief/keyphrase"
	"github.com/bassamadnan/mailbrief/llm"
	"github.com/bassamadnan/mailbrief/orchestrator"
	"github.com/bassamadnan/mailbrief/summarize"
	"github.com/bassamadnan/mailbrief/tui"
)

type options struct {
	Yes             bool     `short:"y" long:"yes" description:"Do not wait for Enter before each step"`
	Browse          bool     `short:"b" long:"browse" description:"Open the summaries in a browser view when the run ends"`
	OfflineKeywords bool     `long:"offline-keywords" description:"Rank key phrases by frequency instead of embeddings"`
	Filters         string   `long:"filters" description:"Path to the filter file (overrides MAILBRIEF_FILTER_FILE)"`
	IgnoreSender    []string `long:"ignore-sender" description:"Add a sender to the ignore list and save it"`
	IgnoreSubject   []string `long:"ignore-subject" description:"Add a subject keyword to the ignore list and save it"`
	EnvFile         []string `long:"env-file" description:"Env file to load before reading settings (default .env)"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	settings, err := config.LoadSettings(opts.EnvFile...)
	if err != nil {
		log.Fatal("Failed to load settings", "error", err)
	}
	if opts.Filters != "" {
		settings.FilterFile = opts.Filters
	}

	logFile, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		log.Fatal("Failed to open log file", "path", settings.LogFile, "error", err)
	}
	defer logFile.Close()

	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	log.SetDefault(logger)
	logger.Info("Application starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cancelling context...")
		cancel()
	}()

	if err := run(ctx, opts, settings, logger); err != nil {
		logger.Error("Run failed", "error", err)
		fmt.Fprintf(os.Stderr, "mailbrief: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
	logger.Info("Application exiting.")
}

func run(ctx context.Context, opts options, settings *config.Settings, logger *log.Logger) error {
	cfgManager, err := config.NewManager(settings.FilterFile)
	if err != nil {
		return fmt.Errorf("initializing filters: %w", err)
	}
	for _, s := range opts.IgnoreSender {
		if err := cfgManager.AddIgnoreSender(s); err != nil {
			return err
		}
	}
	for _, k := range opts.IgnoreSubject {
		if err := cfgManager.AddIgnoreKeywordInSubject(k); err != nil {
			return err
		}
	}
	logger.Debug("Filters loaded", "path", settings.FilterFile)

	gmailClient, err := gmail.NewClient(ctx, gmail.Config{
		CredentialsFile: settings.CredentialsFile,
		TokenFile:       settings.TokenFile,
	}, cfgManager, logger.WithPrefix("gmail"))
	if err != nil {
		return fmt.Errorf("%w (ensure %s is present and valid)", err, settings.CredentialsFile)
	}

	if settings.OpenAIAPIKey == "" {
		logger.Warn("No API key set; model calls will fail and entries will be marked as failed")
	}
	model := llm.New(llm.Params{
		APIKey:         settings.OpenAIAPIKey,
		BaseURL:        settings.OpenAIBaseURL,
		Model:          settings.Model,
		EmbeddingModel: settings.EmbeddingModel,
		MinInputTokens: settings.MinInputTokens,
		MaxRetries:     settings.MaxRetries,
	}, logger.WithPrefix("llm"))

	var ranker summarize.Keyphrases = keyphrase.EmbeddingRanker{
		Embedder: model,
		Fallback: keyphrase.FrequencyRanker{},
	}
	if opts.OfflineKeywords {
		ranker = keyphrase.FrequencyRanker{}
	}
	strategy := summarize.NewStrategy(model, ranker, logger.WithPrefix("summarize"))

	var prompter orchestrator.Prompter = tui.EnterPrompter{}
	if opts.Yes {
		prompter = tui.AutoPrompter{}
	}
	runner := orchestrator.NewRunner(gmailClient, strategy, tui.NewStyledReporter(os.Stdout),
		orchestrator.WithPrompter(prompter),
		orchestrator.WithLogger(logger.WithPrefix("run")),
	)

	snap, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	logger.Info("Run finished", "senders", snap.Len(), "overwrites", snap.Overwrites())

	if opts.Browse && ctx.Err() == nil {
		return tui.NewBrowser(snap).Run()
	}
	return nil
}
