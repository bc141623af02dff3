package views

// Pager tracks the cursor over the roadmap rows. The visible page is always
// the one holding the cursor.
type Pager struct {
	size   int
	rows   int
	cursor int
}

// NewPager creates a pager showing size rows per page
func NewPager(size int) *Pager {
	p := &Pager{}
	p.Resize(size)
	return p
}

// Resize sets the rows per page
func (p *Pager) Resize(size int) {
	p.size = max(size, 1)
}

// SetRows sets the row count and clamps the cursor into it
func (p *Pager) SetRows(n int) {
	p.rows = max(n, 0)
	p.clamp()
}

// Cursor returns the selected row
func (p *Pager) Cursor() int {
	return p.cursor
}

// Select moves the cursor to row i
func (p *Pager) Select(i int) {
	p.cursor = i
	p.clamp()
}

// Move shifts the cursor by delta rows
func (p *Pager) Move(delta int) {
	p.Select(p.cursor + delta)
}

// Flip jumps to the first row of the page delta pages away.
// Returns false when that page does not exist.
func (p *Pager) Flip(delta int) bool {
	page := p.page() + delta
	if page < 0 || page >= p.Pages() {
		return false
	}
	p.cursor = min(page*p.size, max(p.rows-1, 0))
	return true
}

// Window returns the half-open row range of the visible page
func (p *Pager) Window() (start, end int) {
	start = p.page() * p.size
	return start, min(start+p.size, p.rows)
}

// Pages returns the page count, at least 1
func (p *Pager) Pages() int {
	if p.rows == 0 {
		return 1
	}
	return (p.rows + p.size - 1) / p.size
}

// Page returns the 1-based page holding the cursor
func (p *Pager) Page() int {
	return p.page() + 1
}

func (p *Pager) page() int {
	return p.cursor / p.size
}

func (p *Pager) clamp() {
	p.cursor = max(min(p.cursor, p.rows-1), 0)
}
