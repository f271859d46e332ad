// NebulaPick — a terminal lottery presenter.
//
// Usage:
//
//	nebulapick [-names FILE] [-winners N] [-verbose] [-quiet] [-no-sound]
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
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/nebulapick/internal/audio"
	"github.com/hammamikhairi/nebulapick/internal/command"
	"github.com/hammamikhairi/nebulapick/internal/display"
	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/draw"
	"github.com/hammamikhairi/nebulapick/internal/logger"
	"github.com/hammamikhairi/nebulapick/internal/pool"
	"github.com/hammamikhairi/nebulapick/internal/speech"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".nebula-logs/nebula.log", "file to write logs to (use \"stderr\" to log to console)")
	noSound := flag.Bool("no-sound", false, "start with all audio disabled")
	noTTS := flag.Bool("no-tts", false, "disable remote announcement synthesis even if a key is set")
	noSpeech := flag.Bool("no-speech", false, "disable fallback platform speech")
	namesFile := flag.String("names", "", "newline-delimited file of names to load at startup")
	winners := flag.Int("winners", 1, "how many winners each draw picks")
	flag.Parse()

	// Configure logger.
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

	// Wire dependencies.
	store := pool.NewStore(log)
	if *namesFile != "" {
		if err := store.LoadFile(*namesFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	sound := audio.New(log)
	var speaker domain.Speaker = speech.NewPlatformSpeaker(log,
		speech.WithPreferredVoice(speech.PreferredLocale, speech.PreferredVendor),
	)
	if *noSpeech {
		speaker = speech.NewNoOpSpeaker(log)
	}
	parser := command.NewParser(log)

	var ctrl *draw.Controller
	ui := display.NewUI(store, func() display.Status {
		return display.Status{
			PoolSize:    store.Len(),
			WinnerCount: ctrl.WinnerCount(),
			SoundOn:     ctrl.SoundEnabled(),
			Phase:       ctrl.Phase(),
		}
	})

	// Remote announcement synthesis runs only with a key. Without one
	// the reveal always falls back to the platform speaker.
	var drawOpts []draw.Option
	apiKey := os.Getenv(speech.EnvAPIKey)
	if apiKey != "" && !*noTTS {
		var geminiOpts []speech.GeminiOption
		if v := os.Getenv(speech.EnvVoice); v != "" {
			geminiOpts = append(geminiOpts, speech.WithVoice(v))
		}
		synth := speech.NewGeminiClient(apiKey, log, geminiOpts...)
		drawOpts = append(drawOpts, draw.WithSynthesizer(synth))
		log.Info("announcement synthesis enabled (voice=%s)", synth.Voice())
	} else if !*noTTS {
		log.Info("announcement synthesis disabled: set %s to enable", speech.EnvAPIKey)
	}

	ctrl = draw.New(store, speaker, sound, ui, log, drawOpts...)
	if err := ctrl.SetWinnerCount(*winners); err != nil {
		log.Warn("winner count: %v", err)
	}
	ctrl.SetSoundEnabled(!*noSound)

	app := &cliApp{
		ctrl:   ctrl,
		store:  store,
		parser: parser,
		log:    log,
		ui:     ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'draw' to pick a winner, 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	ctrl.Stop()
}

type cliApp struct {
	ctrl   *draw.Controller
	store  *pool.Store
	parser *command.Parser
	log    *logger.Logger
	ui     *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	if a.store.Len() == 0 {
		a.ui.PrintHint("The pool is empty. Add names with 'add <name>' or 'load <file>'.")
	} else {
		a.ui.PrintMessage(fmt.Sprintf("%d names loaded. Ready when you are.", a.store.Len()))
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

		intent := a.parser.Parse(input)
		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if quit := a.handleIntent(ctx, intent); quit {
			return
		}
	}
}

// handleIntent dispatches one parsed command. Returns true on quit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentDraw:
		a.startDraw(ctx)
	case domain.IntentAdd:
		a.addName(intent.Payload)
	case domain.IntentRemove:
		a.removeName(intent.Payload)
	case domain.IntentCount:
		a.setCount(intent.Payload)
	case domain.IntentSound:
		a.setSound(intent.Payload == "on")
	case domain.IntentList:
		a.listNames()
	case domain.IntentLoad:
		a.loadFile(intent.Payload)
	case domain.IntentSave:
		a.saveFile(intent.Payload)
	case domain.IntentDismiss:
		a.ctrl.Dismiss()
		a.ui.DismissWinners()
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		return true
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch that (%q). Type 'help' for commands.", intent.Payload))
	}
	return false
}

func (a *cliApp) startDraw(ctx context.Context) {
	err := a.ctrl.Start(ctx)
	switch {
	case errors.Is(err, domain.ErrEmptyPool):
		a.ui.PrintUrgent("The pool is empty — add some names first.")
	case errors.Is(err, domain.ErrDrawInProgress):
		a.ui.PrintHint("A draw is already running.")
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	}
}

func (a *cliApp) addName(name string) {
	err := a.store.Add(name)
	switch {
	case errors.Is(err, domain.ErrDrawInProgress):
		a.ui.PrintHint("Can't change the pool mid-draw.")
	case errors.Is(err, domain.ErrAlreadyExists):
		a.ui.PrintHint(fmt.Sprintf("%q is already in the pool.", name))
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	default:
		a.ui.PrintMessage(fmt.Sprintf("Added %q (%d names).", name, a.store.Len()))
	}
}

func (a *cliApp) removeName(name string) {
	err := a.store.Remove(name)
	switch {
	case errors.Is(err, domain.ErrDrawInProgress):
		a.ui.PrintHint("Can't change the pool mid-draw.")
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintHint(fmt.Sprintf("%q isn't in the pool.", name))
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	default:
		a.ui.PrintMessage(fmt.Sprintf("Removed %q (%d names).", name, a.store.Len()))
	}
}

func (a *cliApp) setCount(payload string) {
	n, err := strconv.Atoi(payload)
	if err != nil || n < 1 {
		a.ui.PrintHint("Winner count must be a positive number.")
		return
	}
	if err := a.ctrl.SetWinnerCount(n); err != nil {
		a.ui.PrintHint("Can't change the winner count mid-draw.")
		return
	}
	a.ui.PrintMessage(fmt.Sprintf("Each draw now picks %d winner(s).", n))
}

func (a *cliApp) setSound(on bool) {
	a.ctrl.SetSoundEnabled(on)
	if on {
		a.ui.PrintMessage("Sound on.")
	} else {
		a.ui.PrintMessage("Sound off.")
	}
}

func (a *cliApp) listNames() {
	names := a.store.Snapshot()
	if len(names) == 0 {
		a.ui.PrintHint("The pool is empty.")
		return
	}
	a.ui.PrintMessage(fmt.Sprintf("Pool (%d):", len(names)))
	for i, n := range names {
		a.ui.PrintHint(fmt.Sprintf("  %2d. %s", i+1, n))
	}
}

func (a *cliApp) loadFile(path string) {
	if err := a.store.LoadFile(path); err != nil {
		if errors.Is(err, domain.ErrDrawInProgress) {
			a.ui.PrintHint("Can't reload the pool mid-draw.")
			return
		}
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.ui.PrintMessage(fmt.Sprintf("Loaded %d names from %s.", a.store.Len(), path))
}

func (a *cliApp) saveFile(path string) {
	if err := a.store.SaveFile(path); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.ui.PrintMessage(fmt.Sprintf("Saved %d names to %s.", a.store.Len(), path))
}

func (a *cliApp) showHelp() {
	a.ui.PrintMessage("Commands:")
	a.ui.PrintHint("  draw / spin / go   Start a draw")
	a.ui.PrintHint("  add <name>         Add a name to the pool")
	a.ui.PrintHint("  remove <name>      Remove a name from the pool")
	a.ui.PrintHint("  count <n>          Set how many winners each draw picks")
	a.ui.PrintHint("  sound on|off       Toggle all audio")
	a.ui.PrintHint("  list / pool        Show the pool")
	a.ui.PrintHint("  load <file>        Replace the pool from a file")
	a.ui.PrintHint("  save <file>        Write the pool to a file")
	a.ui.PrintHint("  dismiss / ok       Close the winner panel")
	a.ui.PrintHint("  help               Show this message")
	a.ui.PrintHint("  quit / exit        Exit")
}
