package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/core"
	"github.com/Rorical/RoriLogo/internal/dispatcher"
	"github.com/Rorical/RoriLogo/internal/eventbus"
	"github.com/Rorical/RoriLogo/internal/logging"
	"github.com/Rorical/RoriLogo/internal/metrics"
	"github.com/Rorical/RoriLogo/internal/server"
	"github.com/Rorical/RoriLogo/internal/share"
	"github.com/Rorical/RoriLogo/internal/update"
	"github.com/Rorical/RoriLogo/internal/watch"
)

var ErrNoRedis = errors.New("redis address not configured")

// Options selects the optional parts of a session
type Options struct {
	Config        *config.Config
	Logger        *slog.Logger
	ScriptPath    string // loaded once at startup
	WatchPath     string // loaded at startup and on every change
	ListenAddr    string // status and metrics server
	ShareSession  string // publish executed source to this session
	FollowSession string // replay this session read only
}

// Application manages the complete application lifecycle
type Application struct {
	opts       Options
	config     *config.Config
	logger     *slog.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.LogoService
	store      *share.Store
	metrics    *metrics.Metrics
	board      *server.Board
	seq        *animation.Sequencer
	model      *AppModel

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var store *share.Store
	if addr := cfg.GetRedisAddr(); addr != "" {
		store = share.New(addr)
	} else if opts.ShareSession != "" || opts.FollowSession != "" {
		return nil, fmt.Errorf("live sessions need redis: %w", ErrNoRedis)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.Warn("event bus error", "op", err.Operation, "error", err.Err)
	})
	disp := dispatcher.NewEventDispatcher(eb)

	var serviceOpts []core.Option
	serviceOpts = append(serviceOpts, core.WithLogger(logger))
	// the follower mirrors someone else's session, so it never asks or shares
	if opts.FollowSession == "" {
		if assistant := core.NewAssistant(cfg); assistant != nil {
			serviceOpts = append(serviceOpts, core.WithAssistant(assistant))
		}
		if store != nil {
			serviceOpts = append(serviceOpts, core.WithStore(store))
		}
		if opts.ShareSession != "" {
			serviceOpts = append(serviceOpts, core.WithPublisher(store, opts.ShareSession))
		}
	}
	service := core.NewLogoService(cfg, eb, serviceOpts...)

	m := metrics.New()
	board := server.NewBoard()
	frames := update.NewFrames(cfg.GetFrameInterval())
	seq := animation.NewSequencer(frames,
		animation.WithSpeed(cfg.GetSpeed()),
		animation.WithHooks(m.Hooks(logger)),
		animation.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		opts:       opts,
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		store:      store,
		metrics:    m,
		board:      board,
		seq:        seq,
		model:      NewAppModel(disp, seq, frames, board, cfg.GetScale(), opts.FollowSession != ""),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start runs the background services and then the UI until it exits
func (app *Application) Start() error {
	if app.store != nil && (app.opts.ShareSession != "" || app.opts.FollowSession != "") {
		if err := app.store.Ping(app.ctx); err != nil {
			return err
		}
	}

	app.service.Start()

	if err := app.loadScripts(); err != nil {
		return err
	}
	if app.opts.WatchPath != "" {
		app.goRun("watcher", watch.NewWatcher(app.opts.WatchPath, app.eventBus, app.logger).Run)
	}
	if app.opts.ListenAddr != "" {
		router := server.NewRouter(app.board, app.metrics.Registry)
		app.goRun("status server", func(ctx context.Context) error {
			return server.Serve(ctx, app.opts.ListenAddr, router, app.logger)
		})
	}
	if app.opts.FollowSession != "" {
		app.goRun("follower", app.follow)
	}

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (app *Application) loadScripts() error {
	for _, path := range []string{app.opts.ScriptPath, app.opts.WatchPath} {
		if path == "" {
			continue
		}
		if err := watch.NewWatcher(path, app.eventBus, app.logger).Load(); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) goRun(name string, run func(context.Context) error) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		if err := run(app.ctx); err != nil {
			app.logger.Error(name+" stopped", "error", err)
		}
	}()
}

// follow feeds every source published to the followed session into core
func (app *Application) follow(ctx context.Context) error {
	sources, stop, err := app.store.Subscribe(ctx, app.opts.FollowSession)
	if err != nil {
		return err
	}
	defer stop()

	app.logger.Info("following session", "session", app.opts.FollowSession)
	for source := range sources {
		if err := app.eventBus.SendToCore(eventbus.ExecuteEvent{Source: source}); err != nil {
			app.logger.Warn("dropped shared source", "error", err)
		}
	}
	return nil
}

func (app *Application) Stop() {
	app.cancel()
	app.wg.Wait()
	app.seq.Close()
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Warn("failed to close redis client", "error", err)
		}
	}
}
