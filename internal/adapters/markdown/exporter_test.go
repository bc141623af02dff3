package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focusly/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testTree() []*domain.LearningNode {
	root := domain.ManualNode("r", "Go concurrency", domain.NodeTypeSignal, testNow)
	other := domain.ManualNode("o", "Tooling: go vet", domain.NodeTypeNoise, testNow)
	parent := "r"
	child := domain.ManualNode("c", "Channels", domain.NodeTypeSignal, testNow)
	child.ParentID = &parent
	child.Depth = 1
	root.ChildrenIDs = []string{"c"}

	missing := "gone"
	orphan := domain.ManualNode("x", "Orphan", domain.NodeTypeSignal, testNow)
	orphan.ParentID = &missing
	orphan.Depth = 1

	return []*domain.LearningNode{root, other, child, orphan}
}

func TestExport_MirrorsRoadmap(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir)

	paths, err := exp.Export(testTree())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := map[string]string{
		"r": filepath.Join(dir, "01 Go concurrency", NoteFile),
		"o": filepath.Join(dir, "02 Tooling- go vet", NoteFile),
		"c": filepath.Join(dir, "01 Go concurrency", "01 Channels", NoteFile),
		"x": filepath.Join(dir, "03 Orphan", NoteFile),
	}
	for id, path := range want {
		if paths[id] != path {
			t.Errorf("node %s: expected %s, got %s", id, path, paths[id])
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("note for %s not written: %v", id, err)
		}
	}
}

func TestExport_NoteContent(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewExporter(dir).Export(testTree())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(paths["c"])
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	if !strings.Contains(string(data), "# Channels") {
		t.Errorf("note should contain the title heading, got:\n%s", data)
	}
}

func TestExport_Empty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "export")
	paths, err := NewExporter(dir).Export(nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no notes, got %d", len(paths))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export directory should exist: %v", err)
	}
}

func TestFolderName(t *testing.T) {
	tests := []struct {
		position int
		title    string
		want     string
	}{
		{1, "Basics", "01 Basics"},
		{12, "I/O: readers", "12 I-O- readers"},
		{3, "  spaced   out  ", "03 spaced out"},
		{4, "???", "04 Untitled"},
		{5, "Why?", "05 Why"},
	}
	for _, tt := range tests {
		if got := FolderName(tt.position, tt.title); got != tt.want {
			t.Errorf("FolderName(%d, %q) = %q, want %q", tt.position, tt.title, got, tt.want)
		}
	}
}
