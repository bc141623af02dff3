package views

import "testing"

func TestPager_PageFollowsCursor(t *testing.T) {
	p := NewPager(3)
	p.SetRows(7)

	for range 4 {
		p.Move(1)
	}
	if p.Cursor() != 4 || p.Page() != 2 {
		t.Fatalf("cursor %d on page %d, want 4 on page 2", p.Cursor(), p.Page())
	}

	if !p.Flip(1) || p.Cursor() != 6 {
		t.Errorf("Flip(1) moved cursor to %d, want 6", p.Cursor())
	}
	if p.Flip(1) {
		t.Error("flipping past the last page should fail")
	}
	if start, end := p.Window(); start != 6 || end != 7 {
		t.Errorf("Window = %d..%d, want 6..7", start, end)
	}

	if !p.Flip(-2) || p.Cursor() != 0 {
		t.Errorf("Flip(-2) moved cursor to %d, want 0", p.Cursor())
	}
	if p.Flip(-1) {
		t.Error("flipping before the first page should fail")
	}
}

func TestPager_ResizeKeepsCursorVisible(t *testing.T) {
	p := NewPager(10)
	p.SetRows(30)
	p.Select(25)

	p.Resize(4)
	start, end := p.Window()
	if p.Cursor() < start || p.Cursor() >= end {
		t.Errorf("cursor %d outside window %d..%d", p.Cursor(), start, end)
	}
	if p.Pages() != 8 {
		t.Errorf("Pages = %d, want 8", p.Pages())
	}

	p.Resize(0)
	if p.Pages() != 30 {
		t.Errorf("Pages after Resize(0) = %d, want 30", p.Pages())
	}
}

func TestPager_Clamping(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		target int
		want   int
	}{
		{name: "past the end", rows: 3, target: 9, want: 2},
		{name: "negative", rows: 3, target: -4, want: 0},
		{name: "empty roadmap", rows: 0, target: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(5)
			p.SetRows(tt.rows)
			p.Select(tt.target)
			if p.Cursor() != tt.want {
				t.Errorf("cursor = %d, want %d", p.Cursor(), tt.want)
			}
		})
	}

	p := NewPager(5)
	p.SetRows(8)
	p.Select(7)
	p.SetRows(3)
	if p.Cursor() != 2 {
		t.Errorf("shrinking rows left cursor at %d, want 2", p.Cursor())
	}
}
