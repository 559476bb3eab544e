// Souschef — a recipe walkthrough assistant.
//
// Usage:
//
//	souschef [-verbose] [-quiet] [recipe-url]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mirepoix/souschef/internal/atomize"
	"github.com/mirepoix/souschef/internal/conversation"
	"github.com/mirepoix/souschef/internal/display"
	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/engine"
	"github.com/mirepoix/souschef/internal/enrich"
	"github.com/mirepoix/souschef/internal/extract"
	"github.com/mirepoix/souschef/internal/fetch"
	"github.com/mirepoix/souschef/internal/gpt"
	"github.com/mirepoix/souschef/internal/logger"
	"github.com/mirepoix/souschef/internal/nlp"
	"github.com/mirepoix/souschef/internal/recipe"
	"github.com/mirepoix/souschef/internal/sites"
	"github.com/mirepoix/souschef/internal/storage"
	"github.com/mirepoix/souschef/internal/timer"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".souschef-logs/souschef.log", "file to write logs to (use \"stderr\" to log to console)")
	noAI := flag.Bool("no-ai", false, "disable the AI assistant even if GPT keys are set")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to
	// the same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire the pipeline.
	registry := sites.NewRegistry()
	fetcher := fetch.NewClient(log)
	extractor := extract.New(registry, fetcher, log)
	analyzer := nlp.New(log, nlp.WithVerbHints(enrich.MethodVocabulary()...))
	atomizer := atomize.New(analyzer, log)
	enricher := enrich.New(analyzer, log)

	recipes := recipe.NewCache(log)
	store := storage.NewMemoryStore(log)
	ui := display.NewUI(store)
	notifier := conversation.NewCLINotifier(log, ui.Printf)
	router := conversation.NewRouter(log)

	// Build the AI assistant if credentials are available.
	engineOpts := []engine.Option{}
	gptKey := os.Getenv("GPT_CHAT_KEY")
	gptEndpoint := os.Getenv("GPT_CHAT_ENDPOINT")
	if gptKey != "" && gptEndpoint != "" && !*noAI {
		client := gpt.NewClient(gptEndpoint, gptKey, log)
		engineOpts = append(engineOpts, engine.WithAssistant(gpt.NewAgent(client, log)))
		log.Info("AI assistant enabled")
	} else if !*noAI {
		log.Info("AI assistant disabled: set GPT_CHAT_KEY and GPT_CHAT_ENDPOINT env vars to enable")
	}

	eng := engine.New(extractor, atomizer, enricher, recipes, store, log, engineOpts...)

	supervisor := timer.New(store, notifier, log)
	supervisor.Start(ctx)
	defer supervisor.Stop()

	app := &cliApp{
		engine: eng,
		router: router,
		log:    log,
		ui:     ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Paste a recipe URL to get started. Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx, flag.Arg(0))
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	engine    *engine.Engine
	router    domain.IntentParser
	log       *logger.Logger
	ui        *display.UI
	sessionID string // current active session, empty before a recipe is parsed
}

func (a *cliApp) run(ctx context.Context, startURL string) {
	if startURL != "" {
		a.parseURL(ctx, startURL)
	}

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// A pasted URL starts (or restarts) a walkthrough.
		if isRecipeURL(input) {
			a.parseURL(ctx, input)
			continue
		}

		intent, err := a.router.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if done := a.handleIntent(ctx, intent); done {
			return
		}
	}
}

// parseURL runs the extraction pipeline and binds a fresh session.
func (a *cliApp) parseURL(ctx context.Context, url string) {
	a.ui.PrintHint("Fetching and reading the recipe...")

	session, err := a.engine.Parse(ctx, a.sessionID, url)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedSite):
			a.ui.PrintUrgent("Sorry, I don't know how to read recipes from that site yet.")
		case errors.Is(err, domain.ErrFetch):
			a.ui.PrintUrgent("I couldn't fetch that page. Check the URL and your connection.")
		case errors.Is(err, domain.ErrEmptyExtraction):
			a.ui.PrintUrgent("That page doesn't look like a recipe I can read.")
		default:
			a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		}
		return
	}

	a.sessionID = session.ID
	a.ui.PrintAnswer(fmt.Sprintf("Got it! %d ingredients and %d steps.",
		len(session.Recipe.Ingredients), len(session.Recipe.Steps)))
	a.ui.PrintHint("Say 'ingredients', 'show recipe', or 'start' when you're ready to cook.")
}

// handleIntent executes one routed intent. Returns true when the user
// asked to exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	if a.sessionID == "" {
		a.ui.PrintHint("Paste a recipe URL first so I have something to work with.")
		return intent.Type == domain.IntentQuit
	}

	resp, err := a.engine.HandleIntent(ctx, a.sessionID, intent)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCurrentStep):
			a.ui.PrintHint("We haven't started yet — say 'start' to begin with step 1.")
		case errors.Is(err, domain.ErrInvalidStepIndex):
			a.ui.PrintUrgent("That step doesn't exist in this recipe.")
		default:
			a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		}
		return false
	}

	for _, line := range strings.Split(resp.Text, "\n") {
		if resp.Step != nil && strings.HasPrefix(line, "Step ") {
			a.ui.PrintStep(line)
		} else {
			a.ui.PrintAnswer(line)
		}
	}

	if resp.Step != nil && resp.Step.TimerConfig != nil {
		a.ui.PrintHint(fmt.Sprintf("Timer running: %s (%s)",
			resp.Step.TimerConfig.Label, resp.Step.TimerConfig.Duration))
	}

	return resp.Done
}

// isRecipeURL reports whether typed input should be treated as a page
// to parse rather than a command.
func isRecipeURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
