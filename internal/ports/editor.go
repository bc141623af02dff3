package ports

import "os/exec"

// NoteOpener opens exported node notes in the user's editor
type NoteOpener interface {
	// OpenFile blocks until the editor exits
	OpenFile(path string) error

	// Command builds the editor process without starting it,
	// for handing over the terminal with tea.ExecProcess
	Command(path string) (*exec.Cmd, error)
}
