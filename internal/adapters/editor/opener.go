package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"focusly/internal/ports"
)

// fallbackEditors are tried in order when neither the configured editor
// nor $EDITOR/$VISUAL is set
var fallbackEditors = []string{"nvim", "vim", "vi", "nano", "code"}

// Opener implements ports.NoteOpener
type Opener struct {
	editor   string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.NoteOpener = (*Opener)(nil)

// NewOpener creates an opener. editor may carry arguments ("code --wait");
// empty means use the environment.
func NewOpener(editor string) *Opener {
	return &Opener{
		editor:   editor,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// OpenFile opens a note and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns the editor process for path, wired to the terminal
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.Resolve()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR or editor in the config file")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Resolve returns the editor command line, or nil when none is available
func (o *Opener) Resolve() []string {
	for _, candidate := range []string{o.editor, o.getenv("EDITOR"), o.getenv("VISUAL")} {
		if argv := strings.Fields(candidate); len(argv) > 0 {
			return argv
		}
	}

	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
