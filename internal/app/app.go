// Package app provides the terminal front end of the editor.
//
// Application wires the engine, the line layouts and the configuration to a
// tcell screen. Key presses become edit ops or movements, edits update the
// layouts incrementally through their delta, and every event is followed by
// a redraw.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/edit"
	"github.com/dshills/textcore/internal/renderer/layout"
	"github.com/dshills/textcore/internal/renderer/viewport"
)

// DefaultText is shown when no initial text is given.
const DefaultText = "This is the text"

// Options configures an Application.
type Options struct {
	// ConfigPath is the path to the configuration file. When set the file
	// is watched and changes are applied while running.
	ConfigPath string

	// Text is the initial document.
	Text string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Clipboard overrides the system clipboard.
	Clipboard Clipboard

	// Logger overrides the logger built from the configuration.
	Logger *Logger
}

// Application is the running editor.
type Application struct {
	opts      Options
	cfg       *config.Config
	logger    *Logger
	logCloser io.Closer
	clipboard Clipboard

	engine  *engine.Engine
	layouts *layout.Layouts

	screen tcell.Screen
	width  int
	height int
	view   *viewport.Viewport

	watcher *config.Watcher
	reloads chan *config.Config
}

// New creates an Application. The configuration file, if any, is read
// here; a missing file means defaults.
func New(opts Options) (*Application, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	app := &Application{
		opts:      opts,
		cfg:       cfg,
		clipboard: opts.Clipboard,
		reloads:   make(chan *config.Config, 1),
		view:      viewport.New(1, 1),
	}
	app.view.SetMargins(cfg.Editor.ScrollMargin, cfg.Editor.ScrollMargin)
	if app.clipboard == nil {
		app.clipboard = SystemClipboard()
	}
	if err := app.initLogger(); err != nil {
		return nil, err
	}

	e, err := engine.New(
		engine.WithContent(opts.Text),
		engine.WithLogger(app.logger.WithComponent("engine")),
	)
	if err != nil {
		return nil, err
	}
	app.engine = e
	app.layouts = layout.NewLayouts(cfg.Editor.TabWidth, 0)
	app.layouts.Rebuild(e.Text())
	return app, nil
}

func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
		return nil
	}

	level := app.cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	if app.cfg.Log.File == "" {
		app.logger = NullLogger
		return nil
	}
	f, err := os.OpenFile(app.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	app.logCloser = f
	app.logger = NewLogger(LoggerConfig{Level: ParseLogLevel(level), Output: f, Prefix: "textcore"})
	return nil
}

// Engine returns the document engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Layouts returns the current line layouts.
func (app *Application) Layouts() *layout.Layouts {
	return app.layouts
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// SetScreen attaches and initializes the screen.
func (app *Application) SetScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	s.EnablePaste()
	app.screen = s
	app.resize(s.Size())
	return nil
}

// Run processes events until the user quits, ctx is done or the screen
// fails. A user quit returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if app.screen == nil {
		return ErrNoScreen
	}
	if app.opts.ConfigPath != "" && app.watcher == nil {
		if err := app.watchConfig(); err != nil {
			app.logger.Warn("config watch disabled", "error", err)
		}
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	app.logger.Info("started", "lines", app.engine.Text().LineCount())
	for {
		app.Draw()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				return err
			}
		case cfg := <-app.reloads:
			app.ApplyConfig(cfg)
		}
	}
}

// Shutdown releases the screen, the config watcher and the log file.
func (app *Application) Shutdown() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.screen != nil {
		app.screen.Fini()
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}

func (app *Application) watchConfig() error {
	log := app.logger.WithComponent("config")
	w, err := config.NewWatcher(app.opts.ConfigPath, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("reload failed", "error", err)
			return
		}
		// Keep only the newest pending reload.
		select {
		case <-app.reloads:
		default:
		}
		app.reloads <- cfg
	})
	if err != nil {
		return err
	}
	app.watcher = w
	return nil
}

// ApplyConfig switches to cfg, laying the text out again if the layout
// settings changed.
func (app *Application) ApplyConfig(cfg *config.Config) {
	old := app.cfg
	app.cfg = cfg
	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	app.view.SetMargins(cfg.Editor.ScrollMargin, cfg.Editor.ScrollMargin)

	if old.Editor.TabWidth != cfg.Editor.TabWidth {
		app.layouts = layout.NewLayouts(cfg.Editor.TabWidth, app.wrapColumn())
		app.layouts.Rebuild(app.engine.Text())
	} else if wrap := app.wrapColumn(); wrap != app.layouts.WrapWidth() {
		app.layouts.SetWrapWidth(wrap, app.engine.Text())
	}
	app.scrollToCaret()
	app.logger.Info("config applied", "tab_width", cfg.Editor.TabWidth, "wrap", app.wrapColumn())
}

func (app *Application) wrapColumn() int {
	if app.width == 0 {
		return 0
	}
	return app.cfg.WrapColumn(app.width)
}

func (app *Application) resize(width, height int) {
	app.width, app.height = width, height
	app.view.Resize(width, max(height-1, 1))
	if wrap := app.wrapColumn(); wrap != app.layouts.WrapWidth() {
		app.layouts.SetWrapWidth(wrap, app.engine.Text())
	}
	app.scrollToCaret()
}

// HandleEvent processes one screen event. It returns ErrQuit when the
// user asks to exit.
func (app *Application) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.resize(ev.Size())
		if app.screen != nil {
			app.screen.Sync()
		}
	case *tcell.EventKey:
		cmd, ok := Lookup(ev)
		if !ok {
			return nil
		}
		return app.Execute(cmd)
	}
	return nil
}

// Execute runs a command against the document.
func (app *Application) Execute(cmd Command) error {
	switch cmd.Action {
	case ActionQuit:
		return ErrQuit
	case ActionEdit:
		app.edit(cmd)
	case ActionMove:
		if _, err := app.engine.Move(cmd.Movement, app.layouts, cmd.Modify); err != nil {
			app.logger.Warn("move failed", "command", cmd, "error", err)
		}
	case ActionCopy:
		app.copySelection()
	case ActionCut:
		if app.copySelection() {
			app.edit(Command{Action: ActionEdit, Op: edit.Insert{Text: ""}})
		}
	case ActionPaste:
		text, err := app.clipboard.ReadAll()
		if err != nil {
			app.logger.Warn("paste failed", "error", err)
			return nil
		}
		app.edit(Command{Action: ActionEdit, Op: edit.Insert{Text: text}})
	}
	app.scrollToCaret()
	return nil
}

func (app *Application) edit(cmd Command) {
	res := app.engine.Apply(cmd.Op)
	if res.NoOp {
		return
	}
	app.layouts.Update(res.Text, res.Delta)
}

// copySelection writes the text of every non-empty region to the
// clipboard, one region per line. It reports whether anything was copied.
func (app *Application) copySelection() bool {
	text := app.engine.Text()
	var parts []string
	for r := range app.engine.Selection().All() {
		if !r.IsCaret() {
			parts = append(parts, text.Slice(r.Min(), r.Max()))
		}
	}
	if len(parts) == 0 {
		return false
	}
	if err := app.clipboard.WriteAll(strings.Join(parts, "\n")); err != nil {
		app.logger.Warn("copy failed", "error", err)
		return false
	}
	return true
}
