package models

type EntryType int

const (
	Command EntryType = iota
	Program
	Failure
	Suggestion
)

// Entry is one line of the session history shown above the input
type Entry struct {
	Content string
	Type    EntryType
}
