package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/dispatcher"
	"github.com/Rorical/RoriLogo/internal/models"
	"github.com/Rorical/RoriLogo/internal/server"
	"github.com/Rorical/RoriLogo/internal/update"
	"github.com/Rorical/RoriLogo/ui/components"
	"github.com/Rorical/RoriLogo/ui/styles"
)

const (
	historyLines   = 6
	minCanvasRows  = 5
	defaultWidth   = 80
	defaultHeight  = 24
	reservedChrome = historyLines + 3 + 1 + 2 // history, input box, status bar, canvas border
)

// AppModel is the Bubble Tea model. The sequencer and its frames live here
// so that every pose change happens on the Update goroutine.
type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	seq        *animation.Sequencer
	frames     *update.Frames
	board      *server.Board
	scale      float64
}

func NewAppModel(disp *dispatcher.EventDispatcher, seq *animation.Sequencer, frames *update.Frames, board *server.Board, scale float64, follower bool) *AppModel {
	return &AppModel{
		appModel: models.AppModel{
			Entries:  make([]models.Entry, 0), // core sends the welcome entries
			Status:   "Ready",
			Width:    defaultWidth,
			Height:   defaultHeight,
			Follower: follower,
		},
		dispatcher: disp,
		seq:        seq,
		frames:     frames,
		board:      board,
		scale:      scale,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case update.CoreEventMsg:
		update.HandleCoreEvent(&m.appModel, msg)
		m.seq.SetInstructions(m.appModel.Instructions)
		cmd = m.dispatcher.ListenForCoreEvents()
	case update.FrameMsg:
		m.frames.Fire(msg)
	default:
		cmd = update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	}

	m.board.Publish(m.seq.Scene(), m.appModel.Version)
	return m, tea.Batch(cmd, m.frames.Flush())
}

func (m *AppModel) canvasSize() (int, int) {
	width := m.appModel.Width - 2
	if width < 1 {
		width = 1
	}
	height := m.appModel.Height - reservedChrome
	if height < minCanvasRows {
		height = minCanvasRows
	}
	return width, height
}

func (m *AppModel) View() string {
	var b strings.Builder

	scene := m.seq.Scene()
	width, height := m.canvasSize()

	b.WriteString(styles.CanvasStyle(width).Render(components.RenderCanvas(scene, width, height, m.scale)))
	b.WriteString("\n")
	b.WriteString(components.RenderEntries(m.appModel.Entries, historyLines))
	b.WriteString(components.RenderInput(m.appModel.Input, m.appModel.Follower, m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, scene, m.appModel.Loading, m.appModel.LoadingDots, m.appModel.Width))

	return b.String()
}
