package selection

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/masmgr/changelog-gen/internal/output"
	"github.com/masmgr/changelog-gen/internal/scoring"
)

// InteractiveOptions configures the interactive selector.
type InteractiveOptions struct {
	In     io.Reader // keys or line commands; raw mode is used when it is a terminal
	Out    io.Writer
	Output output.OutputOptions
}

const (
	rawHelp  = "↑/k ↓/j move · space toggle · a toggle all · enter confirm · q/esc cancel"
	lineHelp = "Toggle with N or N-M, 'all', 'none'; empty line confirms, q cancels."
)

// Interactive presents scored as a checklist and blocks until the user
// confirms or cancels. Cancelling is not an error: it yields an empty
// Selection with OutcomeCancelled.
func Interactive(ctx context.Context, scored []scoring.ScoredCommit, opts InteractiveOptions) (Selection, error) {
	if len(scored) == 0 {
		return Selection{Outcome: OutcomeConfirmed}, nil
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}

	c := NewChecklist(scored)
	st := newStyles(opts.Out)

	if f, ok := opts.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := runRaw(ctx, f, c, st, opts); err != nil {
			return Selection{}, err
		}
		return c.Result(), nil
	}

	if err := runLines(ctx, opts.In, c, st, opts); err != nil {
		return Selection{}, err
	}
	return c.Result(), nil
}

// runRaw drives the checklist from single key presses with the terminal in
// raw mode. The terminal is restored before returning.
func runRaw(ctx context.Context, f *os.File, c *Checklist, st styles, opts InteractiveOptions) error {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	r := bufio.NewReader(f)
	drawn := 0
	for c.State() == StatePresenting {
		if err := ctx.Err(); err != nil {
			return err
		}

		drawn = redraw(opts.Out, c, st, opts.Output, drawn)

		k, err := decodeKey(r)
		if err != nil {
			if err == io.EOF {
				c.Handle(KeyCancel)
				break
			}
			return err
		}
		c.Handle(k)
	}

	redraw(opts.Out, c, st, opts.Output, drawn)
	return nil
}

// decodeKey reads one key press. Arrow keys arrive as ESC [ A/B; a lone ESC
// with nothing buffered behind it cancels.
func decodeKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return KeyNone, err
	}

	switch b {
	case 0x1b:
		if r.Buffered() == 0 {
			return KeyCancel, nil
		}
		next, err := r.ReadByte()
		if err != nil {
			return KeyCancel, nil
		}
		if next != '[' && next != 'O' {
			return KeyNone, nil
		}
		code, err := r.ReadByte()
		if err != nil {
			return KeyNone, err
		}
		switch code {
		case 'A':
			return KeyUp, nil
		case 'B':
			return KeyDown, nil
		}
		return KeyNone, nil
	case 'k':
		return KeyUp, nil
	case 'j':
		return KeyDown, nil
	case ' ':
		return KeyToggle, nil
	case 'a':
		return KeyToggleAll, nil
	case '\r', '\n':
		return KeyConfirm, nil
	case 'q', 0x03:
		return KeyCancel, nil
	}
	return KeyNone, nil
}

// redraw clears the previously drawn block of lines and paints the checklist
// again. It returns the number of lines painted.
func redraw(w io.Writer, c *Checklist, st styles, opts output.OutputOptions, previous int) int {
	if previous > 0 {
		fmt.Fprintf(w, "\x1b[%dA\r\x1b[J", previous)
	}
	lines := checklistLines(c, st, opts, true)
	for _, line := range lines {
		fmt.Fprint(w, line, "\r\n")
	}
	return len(lines)
}

// checklistLines renders the checklist. With cursor set the highlighted row
// is marked with ">"; otherwise rows are numbered for line commands.
func checklistLines(c *Checklist, st styles, opts output.OutputOptions, cursor bool) []string {
	lines := []string{st.title.Render(fmt.Sprintf("Select commits for the changelog (%d of %d selected)", c.CheckedCount(), c.Len()))}

	for i := 0; i < c.Len(); i++ {
		box := "[ ]"
		if c.Checked(i) {
			box = st.checked.Render("[x]")
		}

		prefix := fmt.Sprintf("%3d.", i+1)
		if cursor {
			prefix = " "
			if i == c.Cursor() {
				prefix = st.cursor.Render(">")
			}
		}

		item := c.Item(i)
		lines = append(lines, fmt.Sprintf("%s %s %s", prefix, box, output.CommitLine(item, opts)))
		if !opts.HideScores && item.Rationale != "" {
			lines = append(lines, st.rationale.Render("      "+item.Rationale))
		}
	}

	switch c.State() {
	case StateConfirmed:
		lines = append(lines, st.help.Render("Confirmed."))
	case StateCancelled:
		lines = append(lines, st.help.Render("Cancelled."))
	default:
		if cursor {
			lines = append(lines, st.help.Render(rawHelp))
		} else {
			lines = append(lines, st.help.Render(lineHelp))
		}
	}
	return lines
}

// runLines drives the checklist from line commands, for pipes and
// non-terminal input. End of input cancels.
func runLines(ctx context.Context, in io.Reader, c *Checklist, st styles, opts InteractiveOptions) error {
	scanner := bufio.NewScanner(in)
	for c.State() == StatePresenting {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, line := range checklistLines(c, st, opts.Output, false) {
			fmt.Fprintln(opts.Out, line)
		}
		fmt.Fprint(opts.Out, "> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			c.Handle(KeyCancel)
			break
		}

		if err := applyCommand(c, scanner.Text()); err != nil {
			fmt.Fprintln(opts.Out, st.errMsg.Render(err.Error()))
		}
	}
	return nil
}

// applyCommand interprets one line command. Several numbers or ranges may be
// given at once, separated by spaces or commas.
func applyCommand(c *Checklist, line string) error {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		c.Handle(KeyConfirm)
		return nil
	case "q", "quit":
		c.Handle(KeyCancel)
		return nil
	case "all":
		c.SetAll(true)
		return nil
	case "none":
		c.SetAll(false)
		return nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	var toggles []int
	for _, field := range fields {
		lo, hi, err := parseRange(field, c.Len())
		if err != nil {
			return err
		}
		for i := lo; i <= hi; i++ {
			toggles = append(toggles, i-1)
		}
	}
	for _, i := range toggles {
		c.Toggle(i)
	}
	return nil
}

// parseRange parses "N" or "N-M" as 1-based inclusive bounds within [1, n].
func parseRange(field string, n int) (int, int, error) {
	loText, hiText, isRange := strings.Cut(field, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(loText))
	if err != nil {
		return 0, 0, fmt.Errorf("unrecognised command %q", field)
	}
	hi := lo
	if isRange {
		hi, err = strconv.Atoi(strings.TrimSpace(hiText))
		if err != nil {
			return 0, 0, fmt.Errorf("unrecognised command %q", field)
		}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 1 || hi > n {
		return 0, 0, fmt.Errorf("item %q out of range 1-%d", field, n)
	}
	return lo, hi, nil
}
