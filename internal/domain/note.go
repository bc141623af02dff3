package domain

import (
	"fmt"
	"strings"
)

// NoteTemplate renders a node as a Markdown note with YAML frontmatter
func NoteTemplate(n *LearningNode) string {
	var b strings.Builder

	fmt.Fprintf(&b, `---
aliases:
  - %s
created: %s
difficulty: %d
pomodoros: %d
tags:
  - focusly
  - %s
  - %s
---

# %s

%s
`, n.Title, n.Created().Format("2006/01/02"), n.DifficultyLevel, n.PomodorosSpent,
		n.Type, n.Status, n.Title, sentence(n.Description))

	if n.LearningOutcome != "" {
		fmt.Fprintf(&b, "\n**Outcome:** %s\n", sentence(n.LearningOutcome))
	}
	writeList(&b, "Search queries", n.SearchQueries)
	writeList(&b, "Resources", n.Resources)

	if c := n.DeepContent; c != nil {
		if c.ExecutiveSummary != "" {
			fmt.Fprintf(&b, "\n## Executive summary\n\n%s\n", c.ExecutiveSummary)
		}
		writeNumbered(&b, "Technical mechanics", c.TechnicalMechanics)
		writeList(&b, "Minute details", c.MinuteDetails)
		if c.ExpertMentalModel != "" {
			fmt.Fprintf(&b, "\n## Expert mental model\n\n%s\n", c.ExpertMentalModel)
		}
		writeList(&b, "Common pitfalls", c.CommonPitfalls)
		if c.ELI7 != "" {
			fmt.Fprintf(&b, "\n## ELI7\n\n%s\n", c.ELI7)
		}
		if p := c.Playground; p != nil {
			fmt.Fprintf(&b, "\n## Playground (%s)\n\n%s\n", p.Type, p.Prompt)
			if p.InitialData != "" {
				fmt.Fprintf(&b, "\n```\n%s\n```\n", p.InitialData)
			}
		}
	}
	return b.String()
}

// sentence capitalizes and terminates s
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Description pending."
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeNumbered(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
