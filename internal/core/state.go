package core

import (
	"sync"

	"github.com/Rorical/RoriLogo/internal/models"
)

// ScriptState manages the session history for event-driven architecture
type ScriptState struct {
	mu           sync.RWMutex
	entries      []models.Entry
	isProcessing bool
	lastError    error
}

func NewScriptState() *ScriptState {
	return &ScriptState{
		entries: make([]models.Entry, 0),
	}
}

func (ss *ScriptState) GetEntries() []models.Entry {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	result := make([]models.Entry, len(ss.entries))
	copy(result, ss.entries)
	return result
}

func (ss *ScriptState) add(content string, kind models.EntryType) {
	ss.entries = append(ss.entries, models.Entry{Content: content, Type: kind})
}

// AddProgramMessage adds a program message (system notifications)
func (ss *ScriptState) AddProgramMessage(content string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.add(content, models.Program)
}

func (ss *ScriptState) IsProcessing() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.isProcessing
}

func (ss *ScriptState) GetLastError() error {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.lastError
}

// StartProcessingWithCommand atomically marks processing and records the input
func (ss *ScriptState) StartProcessingWithCommand(content string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.isProcessing = true
	ss.lastError = nil
	ss.add(content, models.Command)
}

// FinishProcessingWithMessage stops processing and records a program message
func (ss *ScriptState) FinishProcessingWithMessage(content string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.isProcessing = false
	ss.lastError = nil
	if content != "" {
		ss.add(content, models.Program)
	}
}

// FinishProcessingWithSuggestion stops processing and records assistant output
func (ss *ScriptState) FinishProcessingWithSuggestion(source string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.isProcessing = false
	ss.lastError = nil
	ss.add(source, models.Suggestion)
}

func (ss *ScriptState) FinishProcessingWithError(err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.isProcessing = false
	ss.lastError = err
	ss.add(err.Error(), models.Failure)
}

func (ss *ScriptState) FinishProcessing() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.isProcessing = false
	ss.lastError = nil
}
