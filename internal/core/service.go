package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Rorical/RoriLogo/internal/config"
	"github.com/Rorical/RoriLogo/internal/eventbus"
	"github.com/Rorical/RoriLogo/internal/logging"
	"github.com/Rorical/RoriLogo/internal/logo"
)

var (
	ErrNoAssistant = errors.New("assistant not configured")
	ErrNoStore     = errors.New("script storage not configured")
)

// Drawer turns a prose description into Logo source
type Drawer interface {
	Draw(ctx context.Context, prompt string) (string, error)
}

// ScriptStore keeps named scripts
type ScriptStore interface {
	Save(ctx context.Context, name, source string) error
	Load(ctx context.Context, name string) (string, error)
}

// Publisher broadcasts executed source to followers of a session
type Publisher interface {
	Publish(ctx context.Context, session, source string) error
}

type Option func(*LogoService)

func WithAssistant(d Drawer) Option {
	return func(s *LogoService) { s.assistant = d }
}

func WithStore(store ScriptStore) Option {
	return func(s *LogoService) { s.store = store }
}

func WithPublisher(p Publisher, session string) Option {
	return func(s *LogoService) {
		s.publisher = p
		s.session = session
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *LogoService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// LogoService runs Logo input off the UI goroutine and pushes the resulting
// instruction list back over the event bus
type LogoService struct {
	config        *config.Config
	interp        *logo.Interpreter
	state         *ScriptState
	eventBus      *eventbus.EventBus
	assistant     Drawer
	store         ScriptStore
	publisher     Publisher
	session       string
	logger        *slog.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	lastSentCount int // Track how many entries we've sent to UI
	started       bool
	done          chan struct{}
}

func NewLogoService(cfg *config.Config, eb *eventbus.EventBus, opts ...Option) *LogoService {
	ctx, cancel := context.WithCancel(context.Background())
	service := &LogoService{
		config:   cfg,
		interp:   logo.NewInterpreter(),
		state:    NewScriptState(),
		eventBus: eb,
		logger:   logging.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(service)
	}

	service.addWelcomeMessages(cfg)
	return service
}

// Start runs the core logic in a goroutine
func (s *LogoService) Start() {
	// Send initial state to UI immediately
	s.pushStateToUI()
	s.started = true
	go s.eventLoop()
}

// Stop cancels the event loop and waits for it to exit
func (s *LogoService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
}

func (s *LogoService) eventLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *LogoService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.ExecuteEvent:
		s.execute(e.Source)
	case eventbus.ReplaceScriptEvent:
		s.replace(e.Source, e.Origin)
	case eventbus.AskEvent:
		s.ask(e.Prompt)
	case eventbus.SaveEvent:
		s.save(e.Name)
	case eventbus.LoadEvent:
		s.load(e.Name)
	default:
		s.logger.Warn("ignoring unknown UI event", "type", fmt.Sprintf("%T", event))
	}
}

func (s *LogoService) execute(source string) {
	s.state.StartProcessingWithCommand(source)
	s.pushStateToUI()

	res, err := s.interp.Execute(source)
	if err != nil {
		s.state.FinishProcessingWithError(err)
		s.pushStateToUI()
		return
	}
	s.logger.Debug("executed", "added", res.Added, "replaced", res.Replaced, "total", len(res.Instructions))
	s.publish(source)
	s.state.FinishProcessing()
	s.pushStateToUI()
}

func (s *LogoService) replace(source, origin string) {
	res, err := s.interp.Replace(source)
	if err != nil {
		s.state.FinishProcessingWithError(fmt.Errorf("%s: %w", origin, err))
		s.pushStateToUI()
		return
	}
	s.publish("cs\n" + source)
	s.state.FinishProcessingWithMessage(fmt.Sprintf("Loaded %s (%d instructions)", origin, len(res.Instructions)))
	s.pushStateToUI()
}

func (s *LogoService) ask(prompt string) {
	s.state.StartProcessingWithCommand("? " + prompt)
	s.pushStateToUI()

	if s.assistant == nil {
		s.state.FinishProcessingWithError(ErrNoAssistant)
		s.pushStateToUI()
		return
	}

	source, err := s.assistant.Draw(s.ctx, prompt)
	if err != nil {
		s.state.FinishProcessingWithError(err)
		s.pushStateToUI()
		return
	}
	if _, err := s.interp.Execute(source); err != nil {
		s.state.FinishProcessingWithError(fmt.Errorf("assistant produced invalid Logo: %w", err))
		s.pushStateToUI()
		return
	}
	s.publish(source)
	s.state.FinishProcessingWithSuggestion(source)
	s.pushStateToUI()
}

func (s *LogoService) save(name string) {
	s.state.StartProcessingWithCommand(":save " + name)
	if s.store == nil {
		s.state.FinishProcessingWithError(ErrNoStore)
		s.pushStateToUI()
		return
	}
	if err := s.store.Save(s.ctx, name, s.interp.Script()); err != nil {
		s.state.FinishProcessingWithError(err)
		s.pushStateToUI()
		return
	}
	s.state.FinishProcessingWithMessage(fmt.Sprintf("Saved '%s'", name))
	s.pushStateToUI()
}

func (s *LogoService) load(name string) {
	s.state.StartProcessingWithCommand(":load " + name)
	if s.store == nil {
		s.state.FinishProcessingWithError(ErrNoStore)
		s.pushStateToUI()
		return
	}
	source, err := s.store.Load(s.ctx, name)
	if err != nil {
		s.state.FinishProcessingWithError(err)
		s.pushStateToUI()
		return
	}
	s.replace(source, "'"+name+"'")
}

func (s *LogoService) publish(source string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(s.ctx, s.session, source); err != nil {
		s.logger.Error("failed to publish to session", "session", s.session, "error", err)
	}
}

func (s *LogoService) pushStateToUI() {
	allEntries := s.state.GetEntries()

	// Only send new entries to reduce resource usage
	newEntries := allEntries[s.lastSentCount:]
	s.lastSentCount = len(allEntries)

	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Instructions: slices.Clone(s.interp.Instructions()),
		Version:      s.interp.Version(),
		Entries:      newEntries,
		IsProcessing: s.state.IsProcessing(),
		Error:        s.state.GetLastError(),
	}); err != nil {
		s.logger.Error("failed to send state to UI", "error", err)
	}
}

func (s *LogoService) addWelcomeMessages(cfg *config.Config) {
	s.state.AddProgramMessage("-- RORILOGO --")
	s.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s", cfg.ActiveProfile))
	s.state.AddProgramMessage("Try: repeat 4 [fd 50 rt 90]")

	var extras []string
	if s.assistant != nil {
		extras = append(extras, "'? <description>' asks the assistant")
	}
	if s.store != nil {
		extras = append(extras, "':save <name>' and ':load <name>' keep scripts")
	}
	if s.publisher != nil {
		extras = append(extras, fmt.Sprintf("sharing live as '%s'", s.session))
	}
	if len(extras) > 0 {
		s.state.AddProgramMessage(strings.Join(extras, " · "))
	}
	s.state.AddProgramMessage("Controls: Ctrl+C or Esc to exit")
	s.state.AddProgramMessage("")
}
