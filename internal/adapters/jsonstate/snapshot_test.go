package jsonstate

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusly/internal/domain"
	"focusly/internal/ports"
)

func testSnapshot() *ports.Snapshot {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	root := domain.ManualNode("a", "Root", domain.NodeTypeSignal, now)
	root.ChildrenIDs = []string{"b"}
	root.DeepContent = &domain.DeepContent{
		ExecutiveSummary:   "summary",
		TechnicalMechanics: []string{"m"},
		MinuteDetails:      []string{},
		CommonPitfalls:     []string{},
		ELI7:               "simple",
		Playground:         &domain.Playground{Type: domain.PlaygroundSpreadsheet, Prompt: "fill it"},
	}
	parent := "a"
	child := domain.ManualNode("b", "Child", domain.NodeTypeNoise, now)
	child.ParentID = &parent
	child.Depth = 1
	child.PomodorosSpent = 2

	stats := domain.NewUserStats()
	stats.RecordMastery(now)
	return &ports.Snapshot{
		Nodes: []*domain.LearningNode{root, child},
		Stats: stats,
		Topic: "Rust",
	}
}

func TestEncodeDecode_PreservesSnapshot(t *testing.T) {
	snap := testSnapshot()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))
	assert.Contains(t, buf.String(), `"focusly_nodes"`)
	assert.Contains(t, buf.String(), `"parentId": null`)

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestDecode_BrowserDump(t *testing.T) {
	// Browser storage keeps each value as a serialized string
	dump := `{
		"focusly_nodes": "[{\"id\":\"x\",\"parentId\":null,\"title\":\"T\",\"type\":\"signal\",\"status\":\"locked\",\"depth\":0,\"difficultyLevel\":5,\"pomodorosSpent\":1,\"childrenIds\":[],\"createdAt\":1}]",
		"focusly_stats": "{\"dailyStreak\":3,\"totalNodesMastered\":2,\"totalFocusHours\":1.25,\"masteryHistory\":[{\"date\":\"2026-01-01\",\"count\":2}]}",
		"focusly_topic": "Rust"
	}`

	snap, err := Decode(strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "x", snap.Nodes[0].ID)
	assert.Equal(t, domain.StatusLocked, snap.Nodes[0].Status)
	assert.Equal(t, []string{}, snap.Nodes[0].SearchQueries)
	assert.Equal(t, 3, snap.Stats.DailyStreak)
	assert.InDelta(t, 1.25, snap.Stats.TotalFocusHours, 1e-9)
	assert.Equal(t, "Rust", snap.Topic)
}

func TestDecodeNode_UpgradesLegacyContent(t *testing.T) {
	n, err := DecodeNode([]byte(`{"id": "old", "title": "Old", "content": "long text", "eli7Content": "short text"}`))
	require.NoError(t, err)
	require.NotNil(t, n.DeepContent)
	assert.Equal(t, "long text", n.DeepContent.ExecutiveSummary)
	assert.Equal(t, "short text", n.DeepContent.ELI7)
	assert.Equal(t, domain.StatusAvailable, n.Status)
	assert.Equal(t, domain.NodeTypeSignal, n.Type)
	assert.True(t, n.IsRoot())
}

func TestDecodeNode_KeepsNewContent(t *testing.T) {
	n, err := DecodeNode([]byte(`{"id": "n", "content": "legacy", "deepContent": {"executiveSummary": "current"}}`))
	require.NoError(t, err)
	assert.Equal(t, "current", n.DeepContent.ExecutiveSummary)
}

func TestDecodeNode_RejectsMissingID(t *testing.T) {
	_, err := DecodeNode([]byte(`{"title": "no id"}`))
	assert.Error(t, err)
}

func TestDecode_EmptyDocument(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, snap.Nodes)
	assert.Equal(t, []domain.MasterySample{}, snap.Stats.MasteryHistory)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.json")
	snap := testSnapshot()

	require.NoError(t, WriteFile(path, snap))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Topic, got.Topic)
	assert.Len(t, got.Nodes, 2)
}
