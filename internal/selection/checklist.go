package selection

import "github.com/masmgr/changelog-gen/internal/scoring"

// State is the checklist state. Presenting moves to Confirmed or Cancelled
// exactly once; both are terminal.
type State int

const (
	StatePresenting State = iota
	StateConfirmed
	StateCancelled
)

// Key is a decoded user action.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyToggle
	KeyToggleAll
	KeyConfirm
	KeyCancel
)

// Checklist is the interactive selector's state machine. It holds no I/O.
type Checklist struct {
	items   []scoring.ScoredCommit
	checked []bool
	cursor  int
	state   State
}

// NewChecklist creates a checklist with every item checked.
func NewChecklist(items []scoring.ScoredCommit) *Checklist {
	checked := make([]bool, len(items))
	for i := range checked {
		checked[i] = true
	}
	return &Checklist{items: items, checked: checked}
}

// Len returns the number of items.
func (c *Checklist) Len() int { return len(c.items) }

// Item returns the i-th item.
func (c *Checklist) Item(i int) scoring.ScoredCommit { return c.items[i] }

// Checked reports whether item i is checked.
func (c *Checklist) Checked(i int) bool { return c.checked[i] }

// Cursor returns the highlighted index.
func (c *Checklist) Cursor() int { return c.cursor }

// State returns the current state.
func (c *Checklist) State() State { return c.state }

// CheckedCount returns the number of checked items.
func (c *Checklist) CheckedCount() int {
	n := 0
	for _, on := range c.checked {
		if on {
			n++
		}
	}
	return n
}

// Handle applies a key and returns the resulting state. Keys are ignored once
// the checklist has left StatePresenting.
func (c *Checklist) Handle(k Key) State {
	if c.state != StatePresenting {
		return c.state
	}

	switch k {
	case KeyUp:
		if c.cursor > 0 {
			c.cursor--
		}
	case KeyDown:
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case KeyToggle:
		c.Toggle(c.cursor)
	case KeyToggleAll:
		c.SetAll(c.CheckedCount() != len(c.items))
	case KeyConfirm:
		c.state = StateConfirmed
	case KeyCancel:
		c.state = StateCancelled
	}

	return c.state
}

// Toggle flips item i. Out-of-range indexes are ignored.
func (c *Checklist) Toggle(i int) {
	if c.state != StatePresenting || i < 0 || i >= len(c.items) {
		return
	}
	c.checked[i] = !c.checked[i]
}

// SetAll checks or unchecks every item.
func (c *Checklist) SetAll(on bool) {
	if c.state != StatePresenting {
		return
	}
	for i := range c.checked {
		c.checked[i] = on
	}
}

// Result returns the final selection. A cancelled or still-presenting
// checklist yields an empty selection; a confirmed one keeps list order.
func (c *Checklist) Result() Selection {
	switch c.state {
	case StateConfirmed:
		items := make([]scoring.ScoredCommit, 0, c.CheckedCount())
		for i, item := range c.items {
			if c.checked[i] {
				items = append(items, item)
			}
		}
		return Selection{Items: items, Outcome: OutcomeConfirmed}
	default:
		return Selection{Outcome: OutcomeCancelled}
	}
}
