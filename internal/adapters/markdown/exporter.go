package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focusly/internal/domain"
)

// NoteFile is the file name of every exported note
const NoteFile = "README.md"

// Exporter writes a roadmap as a directory tree of Markdown notes
type Exporter struct {
	root string
}

// NewExporter creates an exporter rooted at dir
func NewExporter(dir string) *Exporter {
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Exporter{root: dir}
}

// Root returns the export directory
func (e *Exporter) Root() string {
	return e.root
}

// Export writes one note per node and returns the note path of each node ID.
// Nodes whose parent is missing from nodes are exported as roots.
func (e *Exporter) Export(nodes []*domain.LearningNode) (map[string]string, error) {
	if err := os.MkdirAll(e.root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	byID := make(map[string]*domain.LearningNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var roots []*domain.LearningNode
	for _, n := range nodes {
		if n.IsRoot() || byID[n.Parent()] == nil {
			roots = append(roots, n)
		}
	}

	paths := make(map[string]string, len(nodes))
	if err := e.writeLevel(e.root, roots, byID, paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (e *Exporter) writeLevel(dir string, level []*domain.LearningNode, byID map[string]*domain.LearningNode, paths map[string]string) error {
	for i, n := range level {
		if _, seen := paths[n.ID]; seen {
			continue
		}

		nodePath := filepath.Join(dir, FolderName(i+1, n.Title))
		if err := os.MkdirAll(nodePath, 0755); err != nil {
			return fmt.Errorf("failed to create note directory: %w", err)
		}

		notePath := filepath.Join(nodePath, NoteFile)
		if err := os.WriteFile(notePath, []byte(domain.NoteTemplate(n)), 0644); err != nil {
			return fmt.Errorf("failed to write note for %s: %w", n.ID, err)
		}
		paths[n.ID] = notePath

		var children []*domain.LearningNode
		for _, id := range n.ChildrenIDs {
			if c := byID[id]; c != nil {
				children = append(children, c)
			}
		}
		if err := e.writeLevel(nodePath, children, byID, paths); err != nil {
			return err
		}
	}
	return nil
}

// FolderName formats a numbered, filesystem-safe folder name for a node
func FolderName(position int, title string) string {
	return fmt.Sprintf("%02d %s", position, slug(title))
}

var unsafeChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "-",
)

func slug(title string) string {
	s := strings.Join(strings.Fields(unsafeChars.Replace(title)), " ")
	s = strings.Trim(s, ". ")
	if s == "" {
		return "Untitled"
	}
	if len(s) > 80 {
		s = strings.TrimSpace(s[:80])
	}
	return s
}
