package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"uaman/internal/dispatch"
	"uaman/internal/tui/messages"
	"uaman/internal/tui/styles"
	"uaman/pkg/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// argField is one row of the launch form: a textinput for valued keys, a
// checkbox for boolean ones.
type argField struct {
	key   types.ArgKey
	input textinput.Model
	on    bool
}

// ArgsForm edits the upload-assistant arguments for one launch target. The
// field set and order mirror the declared argument keys; submitting emits
// the whole bag so every value is persisted, not just the changed ones.
type ArgsForm struct {
	target string
	fields []argField
	cursor int
}

func NewArgsForm(target string, bag dispatch.Bag) *ArgsForm {
	af := &ArgsForm{
		target: target,
		fields: make([]argField, 0, len(types.ArgKeys())),
	}

	for _, key := range types.ArgKeys() {
		if key.Bool() {
			af.fields = append(af.fields, argField{key: key, on: bag.Bool(key)})
			continue
		}
		input := textinput.New()
		input.SetValue(bag.Value(key))
		input.Width = 32
		af.fields = append(af.fields, argField{key: key, input: input})
	}

	if len(af.fields) > 0 && !af.fields[0].key.Bool() {
		af.fields[0].input.Focus()
	}

	return af
}

func (af *ArgsForm) Init() tea.Cmd {
	return nil
}

func (af *ArgsForm) Target() string {
	return af.target
}

func (af *ArgsForm) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			// Space toggles checkboxes; on a textinput it is just a space
			if af.cursor < len(af.fields) && af.fields[af.cursor].key.Bool() {
				af.fields[af.cursor].on = !af.fields[af.cursor].on
				return nil
			}

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Did the user press enter while the launch button was focused?
			if s == "enter" && af.cursor == len(af.fields) {
				return af.Submit
			}

			// Cycle indexes
			if s == "up" || s == "shift+tab" {
				af.cursor--
			} else {
				af.cursor++
			}

			if af.cursor > len(af.fields) {
				af.cursor = 0
			} else if af.cursor < 0 {
				af.cursor = len(af.fields)
			}

			for i := range af.fields {
				if af.fields[i].key.Bool() {
					continue
				}
				if i == af.cursor {
					cmds = append(cmds, af.fields[i].input.Focus())
				} else {
					af.fields[i].input.Blur()
				}
			}

			return tea.Batch(cmds...)
		}
	}

	// Update the focused textinput
	for i := range af.fields {
		if af.fields[i].key.Bool() {
			continue
		}
		var cmd tea.Cmd
		af.fields[i].input, cmd = af.fields[i].input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

func (af *ArgsForm) View() string {
	var s strings.Builder

	s.WriteString(styles.Theme.Title.Render("Launch: "+filepath.Base(af.target)) + "\n\n")

	for i, f := range af.fields {
		label := fmt.Sprintf("%-16s", string(f.key))
		if f.key.Bool() {
			box := "[ ]"
			if f.on {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s", box, f.key)
			if i == af.cursor {
				s.WriteString(styles.Theme.Selected.Render(line))
			} else {
				s.WriteString(styles.Theme.Unselected.Render(line))
			}
			s.WriteString("\n")
			continue
		}
		s.WriteString(styles.Theme.Help.Render(label) + f.input.View() + "\n")
	}

	button := "[ Launch ]"
	if af.cursor == len(af.fields) {
		button = styles.Theme.Selected.Render(button)
	} else {
		button = styles.Theme.Unselected.Render(button)
	}
	s.WriteString("\n" + button + "\n")

	s.WriteString("\n" + styles.Theme.Help.Render("tab/↓ next · shift+tab/↑ prev · space toggle · enter launch · esc cancel"))

	return s.String()
}

// Submit snapshots every field into a bag. The root model persists the bag
// and dispatches.
func (af *ArgsForm) Submit() tea.Msg {
	bag := dispatch.NewBag()
	for _, f := range af.fields {
		if f.key.Bool() {
			bag.SetBool(f.key, f.on)
			continue
		}
		bag.Set(f.key, strings.TrimSpace(f.input.Value()))
	}
	return messages.ArgsSubmittedMsg{Target: af.target, Bag: bag}
}
