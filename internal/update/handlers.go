package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriLogo/internal/eventbus"
	"github.com/Rorical/RoriLogo/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return tea.Quit
	case tea.KeyEnter:
		input := strings.TrimSpace(appModel.Input)
		if input == "" {
			return nil
		}
		if appModel.Follower {
			appModel.Input = ""
			appModel.Status = "Following a shared session (read only)"
			return nil
		}
		if err := eb.SendToCore(ParseInput(input)); err != nil {
			appModel.Status = "Error sending command: " + err.Error()
			return nil
		}
		appModel.Input = ""
	case tea.KeyBackspace:
		if len(appModel.Input) > 0 {
			runes := []rune(appModel.Input)
			appModel.Input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		appModel.Input += " "
	case tea.KeyRunes:
		appModel.Input += string(keyMsg.Runes)
	}
	return nil
}

// ParseInput maps a line of input to the event core should handle
func ParseInput(input string) eventbus.UIEvent {
	switch {
	case strings.HasPrefix(input, "?"):
		return eventbus.AskEvent{Prompt: strings.TrimSpace(strings.TrimPrefix(input, "?"))}
	case strings.HasPrefix(input, ":save "):
		return eventbus.SaveEvent{Name: strings.TrimSpace(strings.TrimPrefix(input, ":save "))}
	case strings.HasPrefix(input, ":load "):
		return eventbus.LoadEvent{Name: strings.TrimSpace(strings.TrimPrefix(input, ":load "))}
	default:
		return eventbus.ExecuteEvent{Source: input}
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Entries = append(appModel.Entries, event.Entries...)
		appModel.Instructions = event.Instructions
		appModel.Version = event.Version
		appModel.Loading = event.IsProcessing

		// Update status based on core state
		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
