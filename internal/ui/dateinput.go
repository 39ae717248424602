package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/highstill/internal/model"
)

// dateInput edits a YYYY-MM-DD date as three digit-only fields.
type dateInput struct {
	fields [3]textinput.Model // year, month, day
	focus  int
	now    func() time.Time
}

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return errors.New("digits only")
		}
	}
	return nil
}

func newDateInput() dateInput {
	placeholders := [3]string{"YYYY", "MM", "DD"}
	charLimits := [3]int{4, 2, 2}

	var fields [3]textinput.Model
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = charLimits[i]
		ti.Width = charLimits[i] + 2
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return dateInput{fields: fields, now: time.Now}
}

func (d *dateInput) Focus() tea.Cmd {
	return d.focusField(0)
}

func (d *dateInput) Blur() {
	for i := range d.fields {
		d.fields[i].Blur()
	}
}

// SetValue splits a stored date back into its parts.
func (d *dateInput) SetValue(date string) {
	parts := strings.SplitN(date, "-", 3)
	for i := range d.fields {
		if i < len(parts) && digitsOnly(parts[i]) == nil {
			d.fields[i].SetValue(parts[i])
		} else {
			d.fields[i].SetValue("")
		}
	}
}

// Value returns the date in model.DateLayout. Year and month default to the
// current ones; the day is required.
func (d *dateInput) Value() (string, error) {
	now := d.now()

	yyyy := strings.TrimSpace(d.fields[0].Value())
	mm := strings.TrimSpace(d.fields[1].Value())
	dd := strings.TrimSpace(d.fields[2].Value())

	if yyyy == "" {
		yyyy = fmt.Sprintf("%04d", now.Year())
	}
	if mm == "" {
		mm = fmt.Sprintf("%02d", int(now.Month()))
	}
	if dd == "" {
		return "", errors.New("day is required")
	}

	dateStr := fmt.Sprintf("%s-%s-%s", yyyy, padLeft(mm, 2), padLeft(dd, 2))
	if _, err := time.Parse(model.DateLayout, dateStr); err != nil {
		return "", fmt.Errorf("invalid date: %s", dateStr)
	}
	return dateStr, nil
}

// Raw returns the parts as typed, joined with "-".
func (d *dateInput) Raw() string {
	parts := make([]string, len(d.fields))
	for i, f := range d.fields {
		parts[i] = strings.TrimSpace(f.Value())
	}
	return strings.Join(parts, "-")
}

func padLeft(s string, length int) string {
	for len(s) < length {
		s = "0" + s
	}
	return s
}

func (d *dateInput) IsEmpty() bool {
	for _, f := range d.fields {
		if f.Value() != "" {
			return false
		}
	}
	return true
}

func (d *dateInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (d dateInput) Update(msg tea.Msg) (dateInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right", "-":
			if d.focus < 2 {
				cmd := d.focusField(d.focus + 1)
				return d, cmd
			}
			return d, nil
		case "shift+tab", "left":
			if d.focus > 0 {
				cmd := d.focusField(d.focus - 1)
				return d, cmd
			}
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d dateInput) View() string {
	return d.fields[0].View() + " - " + d.fields[1].View() + " - " + d.fields[2].View()
}
