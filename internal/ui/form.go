package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/store"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDate
	fieldPriority
	fieldLocation
	fieldCount
)

var (
	labelStyle        = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("241"))
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("170")).Bold(true)
)

// eventForm collects the five user-supplied fields of a task.
type eventForm struct {
	title       textinput.Model
	description textinput.Model
	date        dateInput
	priority    model.Priority
	location    textinput.Model
	focus       formField
	// editID is the task being edited, 0 when creating.
	editID int64
}

func newTextField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func newEventForm() eventForm {
	return eventForm{
		title:       newTextField("Event title...", 256),
		description: newTextField("What's happening...", 1024),
		date:        newDateInput(),
		priority:    model.PriorityMedium,
		location:    newTextField("Where...", 256),
	}
}

// fill loads an existing task for editing.
func (f *eventForm) fill(t model.Task) {
	f.title.SetValue(t.Title)
	f.description.SetValue(t.Description)
	f.date.SetValue(t.DueDate)
	f.priority = t.Priority
	f.location.SetValue(t.Location)
	f.editID = t.ID
}

// fields returns the form values. An untouched date yields an empty DueDate,
// which the store reports as missing; an incomplete or impossible one is
// passed through as typed so the store rejects it as invalid.
func (f *eventForm) fields() store.Fields {
	due := ""
	if !f.date.IsEmpty() {
		var err error
		if due, err = f.date.Value(); err != nil {
			due = f.date.Raw()
		}
	}
	return store.Fields{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		DueDate:     due,
		Priority:    f.priority,
		Location:    f.location.Value(),
	}
}

func (f *eventForm) focusField(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.date.Blur()
	f.location.Blur()

	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldDate:
		return f.date.Focus()
	case fieldLocation:
		return f.location.Focus()
	}
	return nil
}

func (f eventForm) Update(msg tea.Msg) (eventForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			// The date input moves between its own sub-fields first.
			if f.focus == fieldDate && keyMsg.String() == "tab" && f.date.focus < 2 {
				break
			}
			cmd := f.focusField((f.focus + 1) % fieldCount)
			return f, cmd
		case "shift+tab", "up":
			if f.focus == fieldDate && keyMsg.String() == "shift+tab" && f.date.focus > 0 {
				break
			}
			cmd := f.focusField((f.focus + fieldCount - 1) % fieldCount)
			return f, cmd
		}
		if f.focus == fieldPriority {
			switch keyMsg.String() {
			case "right", "l", " ":
				f.priority = f.priority.Next()
			case "left", "h":
				f.priority = f.priority.Next().Next()
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldLocation:
		f.location, cmd = f.location.Update(msg)
	}
	return f, cmd
}

func (f eventForm) label(field formField, text string) string {
	if f.focus == field {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (f eventForm) View() string {
	var priorities []string
	for _, p := range model.Priorities {
		if p == f.priority {
			priorities = append(priorities, priorityStyle(p).Render("["+string(p)+"]"))
		} else {
			priorities = append(priorities, statusStyle.Render(" "+string(p)+" "))
		}
	}

	rows := []string{
		f.label(fieldTitle, "Title") + f.title.View(),
		f.label(fieldDescription, "Description") + f.description.View(),
		f.label(fieldDate, "Date") + f.date.View(),
		f.label(fieldPriority, "Priority") + strings.Join(priorities, " "),
		f.label(fieldLocation, "Location") + f.location.View(),
	}
	return strings.Join(rows, "\n")
}
