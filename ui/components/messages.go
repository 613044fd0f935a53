package components

import (
	"strings"

	"github.com/Rorical/RoriLogo/internal/models"
	"github.com/Rorical/RoriLogo/ui/styles"
)

// RenderEntries renders the last limit history entries. limit <= 0 renders all.
func RenderEntries(entries []models.Entry, limit int) string {
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	var b strings.Builder

	commandStyle := styles.CommandStyle()
	programStyle := styles.ProgramStyle()
	failureStyle := styles.FailureStyle()
	suggestionStyle := styles.SuggestionStyle()

	for _, entry := range entries {
		switch entry.Type {
		case models.Command:
			b.WriteString(commandStyle.Render(Prompt+entry.Content) + "\n")
		case models.Program:
			b.WriteString(programStyle.Render(entry.Content) + "\n")
		case models.Failure:
			b.WriteString(failureStyle.Render("error: "+entry.Content) + "\n")
		case models.Suggestion:
			b.WriteString(suggestionStyle.Render(entry.Content) + "\n")
		}
	}

	return b.String()
}
