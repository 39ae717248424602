package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/highstill/internal/announce"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/notify"
	"github.com/nissyi-gh/highstill/internal/store"
)

type appState int

const (
	stateList appState = iota
	stateForm
	stateConfirm
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 3 * time.Second

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).MarginBottom(1)
	detailStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
	descBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
	toastStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	severityColors = map[model.Severity]string{
		model.SeveritySuccess: "42",
		model.SeverityWarning: "214",
		model.SeverityDanger:  "196",
		model.SeverityInfo:    "39",
	}
	priorityColors = map[model.Priority]string{
		model.PriorityHigh:   "196",
		model.PriorityMedium: "214",
		model.PriorityLow:    "42",
	}
)

func priorityStyle(p model.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColors[p])).Bold(true)
}

type extraKeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Sort     key.Binding
	Announce key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Announce: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy announcement"),
		),
	}
}

func (k extraKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Sort, k.Announce}
}

// Model is the top-level BubbleTea model for the highstill TUI.
// It renders the store's sorted view and forwards user intents to store operations.
type Model struct {
	state    appState
	list     list.Model
	form     eventForm
	store    *store.TaskStore
	toasts   *notify.Recorder
	keys     extraKeyMap
	order    model.SortOrder
	summary  model.Summary
	toast    *notify.Notification
	toastSeq int
	err      error
	width    int
	height   int
	now      func() time.Time
	copyText func(string) error
}

type tasksLoadedMsg struct {
	tasks   []model.Task
	summary model.Summary
}

type toastExpiredMsg int

// NewModel creates a new TUI model. toasts must be a notifier attached to s;
// every notification it records is shown as a toast.
func NewModel(s *store.TaskStore, toasts *notify.Recorder, order model.SortOrder) Model {
	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "High Still events"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	return Model{
		state:    stateList,
		list:     l,
		form:     newEventForm(),
		store:    s,
		toasts:   toasts,
		keys:     keys,
		order:    order,
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}
}

// Init hands the first listing to the program. The snapshot is taken here so
// that the store is only ever touched from the event loop.
func (m Model) Init() tea.Cmd {
	msg := m.snapshot()
	return func() tea.Msg { return msg }
}

func (m Model) snapshot() tasksLoadedMsg {
	return tasksLoadedMsg{
		tasks:   m.store.SortedView(m.order),
		summary: m.store.Summary(),
	}
}

// reload refreshes the listing and summary from the store in place.
func (m Model) reload() Model {
	return m.apply(m.snapshot())
}

func (m Model) apply(msg tasksLoadedMsg) Model {
	m.list.SetItems(buildItems(msg.tasks, m.now()))
	m.summary = msg.summary
	return m
}

// afterMutation reloads the listing and shows any new notification.
func (m Model) afterMutation() (Model, tea.Cmd) {
	return m.reload().popToast()
}

// notify queues a UI-originated message alongside the store's notifications.
func (m Model) notify(message string, severity model.Severity) {
	if m.toasts != nil {
		m.toasts.Notify(message, severity)
	}
}

func (m Model) popToast() (Model, tea.Cmd) {
	if m.toasts == nil {
		return m, nil
	}
	pending := m.toasts.Drain()
	if len(pending) == 0 {
		return m, nil
	}
	last := pending[len(pending)-1]
	m.toast = &last
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg(seq) })
}

func (m Model) selectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 60 / 100
		m.list.SetSize(leftWidth, msg.Height-v-2)
		return m, nil

	case tasksLoadedMsg:
		return m.apply(msg), nil

	case toastExpiredMsg:
		if int(msg) == m.toastSeq {
			m.toast = nil
		}
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateForm
			m.form = newEventForm()
			m.form.date.now = m.now
			m.err = nil
			cmd := m.form.focusField(fieldTitle)
			return m, cmd
		case "e":
			if t, ok := m.selectedTask(); ok {
				current, err := m.store.Get(t.ID)
				if err != nil {
					return m.reload(), nil
				}
				m.state = stateForm
				m.form = newEventForm()
				m.form.date.now = m.now
				m.form.fill(current)
				m.err = nil
				cmd := m.form.focusField(fieldTitle)
				return m, cmd
			}
		case "enter", "x":
			if t, ok := m.selectedTask(); ok {
				if _, err := m.store.ToggleComplete(t.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
					m.err = err
				}
				return m.afterMutation()
			}
		case "d":
			if _, ok := m.selectedTask(); ok {
				m.state = stateConfirm
				return m, nil
			}
		case "o":
			m.order = m.order.Next()
			return m.reload(), nil
		case "y":
			if t, ok := m.selectedTask(); ok {
				if err := m.copyText(announce.Event(t)); err != nil {
					m.notify(fmt.Sprintf("Could not copy announcement: %v", err), model.SeverityWarning)
				} else {
					m.notify(fmt.Sprintf("Announcement for %q copied.", t.Title), model.SeverityInfo)
				}
				return m.popToast()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			fields := m.form.fields()
			var err error
			if m.form.editID != 0 {
				_, err = m.store.Update(m.form.editID, fields)
			} else {
				_, err = m.store.Add(fields)
			}
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				m.err = verr
				return m.popToast()
			}
			m.err = nil
			m.state = stateList
			return m.afterMutation()
		case "esc":
			m.state = stateList
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var confirmed bool
		switch keyMsg.String() {
		case "y":
			confirmed = true
		case "n", "esc":
			confirmed = false
		default:
			return m, nil
		}
		m.state = stateList
		if t, ok := m.selectedTask(); ok {
			if _, err := m.store.Delete(t.ID, confirmed); err != nil &&
				!errors.Is(err, store.ErrCancelled) && !errors.Is(err, store.ErrNotFound) {
				m.err = err
			}
		}
		return m.afterMutation()
	}
	return m, nil
}

func (m Model) renderSummary() string {
	return summaryStyle.Render(fmt.Sprintf("Total %d · Completed %d · Pending %d   %s",
		m.summary.Total, m.summary.Completed, m.summary.Pending,
		statusStyle.Render("sort: "+m.order.Label())))
}

func (m Model) renderDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return statusStyle.Render("No tasks found.\nPress a to add your first task.")
	}

	status := statusStyle.Render("pending")
	if t.Completed {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("completed")
	}

	dueLine := "due: " + t.DueDate
	now := m.now()
	if t.IsOverdue(now) {
		dueLine = errorStyle.Render("⚠️ " + dueLine)
	} else if t.IsDueToday(now) {
		dueLine = "📅 " + dueLine
	}

	return fmt.Sprintf("%s\n%s  %s\n\n%s\n\n%s\nwhere: %s\n\n%s",
		titleStyle.Render(t.Title),
		priorityStyle(t.Priority).Render(string(t.Priority)),
		status,
		descBoxStyle.Render(t.Description),
		dueLine,
		t.Location,
		statusStyle.Render("e: edit  y: copy announcement"),
	)
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	color := severityColors[m.toast.Severity]
	return "\n" + toastStyle.Foreground(lipgloss.Color(color)).Render(m.toast.Message)
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	toast := m.renderToast()

	switch m.state {
	case stateForm:
		header := "New Task"
		if m.form.editID != 0 {
			header = "Update Task"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.form.View() + "\n\n" +
				statusStyle.Render("tab: next field • ←/→: priority • enter: save • esc: cancel") +
				errView + toast,
		)
	case stateConfirm:
		t, _ := m.selectedTask()
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				fmt.Sprintf("  Are you sure you want to delete %q?", t.Title) + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v - 2
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth

		rightPane := detailStyle.
			Width(rightWidth).
			Height(contentHeight).
			Render(m.renderDetail())
		content := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), rightPane)
		return appStyle.Render(m.renderSummary() + "\n" + content + errView + toast)
	}
}
