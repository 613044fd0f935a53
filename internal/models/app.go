package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Entries      []Entry       // History shown above the input
	Instructions []Instruction // Latest instruction list from core
	Version      int           // Bumped by core whenever the list is replaced
	Input        string        // User input field
	Status       string        // Status bar text
	Loading      bool          // Core is processing a request
	LoadingDots  int           // Animation counter for loading dots
	Width        int           // Terminal width
	Height       int           // Terminal height
	Follower     bool          // Read-only replay of a shared session
}
