// Package store owns the task collection: it loads it from a kv.Backend,
// applies validated mutations, writes the whole list back after each one and
// derives the sorted listing and summary counts.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nissyi-gh/highstill/internal/kv"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/notify"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TaskStore is the only reader and writer of the task list. It is not safe
// for concurrent use; callers run one operation to completion at a time.
type TaskStore struct {
	backend  kv.Backend
	key      string
	notifier notify.Notifier
	ids      IDAllocator
	onSave   func()
	collator *collate.Collator
	logger   *slog.Logger

	tasks []model.Task
	ready bool
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithKey sets the backend key. Defaults to model.StorageKey.
func WithKey(key string) Option {
	return func(s *TaskStore) { s.key = key }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *TaskStore) { s.notifier = n }
}

func WithIDAllocator(a IDAllocator) Option {
	return func(s *TaskStore) { s.ids = a }
}

// WithSaveHook registers fn to run after every save, so views derived from
// the stored list elsewhere can refresh.
func WithSaveHook(fn func()) Option {
	return func(s *TaskStore) { s.onSave = fn }
}

// WithLocale sets the language used to compare titles.
func WithLocale(tag language.Tag) Option {
	return func(s *TaskStore) { s.collator = collate.New(tag) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TaskStore) { s.logger = l }
}

// New returns an unloaded store. Load must be called before anything else.
func New(backend kv.Backend, opts ...Option) *TaskStore {
	s := &TaskStore{
		backend:  backend,
		key:      model.StorageKey,
		notifier: notify.Discard,
		ids:      &ClockAllocator{},
		collator: collate.New(language.English),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskStore) mustBeReady() {
	if !s.ready {
		panic("store: TaskStore used before Load")
	}
}

// Load reads the task list from the backend. Missing or corrupt data leaves
// the store empty; the problem is logged, never returned.
func (s *TaskStore) Load() {
	s.tasks = []model.Task{}
	s.ready = true

	data, ok, err := s.backend.Get(s.key)
	if err != nil {
		s.logger.Warn("read tasks failed, starting empty", "key", s.key, "error", err)
		return
	}
	if !ok {
		return
	}

	var loaded []model.Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("stored tasks unreadable, starting empty", "key", s.key, "error", err)
		return
	}

	for _, t := range loaded {
		s.ids.Observe(t.ID)
	}
	seen := make(map[int64]bool, len(loaded))
	for _, t := range loaded {
		if seen[t.ID] {
			old := t.ID
			t.ID = s.ids.Next()
			s.logger.Warn("duplicate task id reassigned", "old_id", old, "new_id", t.ID, "title", t.Title)
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("tasks loaded", "count", len(s.tasks))
}

// save writes the full list under the store key and runs the save hook.
func (s *TaskStore) save() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Error("encode tasks failed", "error", err)
		return
	}
	if err := s.backend.Set(s.key, data); err != nil {
		s.logger.Error("write tasks failed", "key", s.key, "error", err)
		return
	}
	if s.onSave != nil {
		s.onSave()
	}
}

func (s *TaskStore) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// validate trims and checks f, notifying the user on failure.
func (s *TaskStore) validate(f Fields) (Fields, error) {
	f = f.trimmed()
	if err := f.check(); err != nil {
		s.notifier.Notify(MissingFieldsMessage, model.SeverityDanger)
		return Fields{}, err
	}
	return f, nil
}

// Add creates a task from f and appends it to the list.
func (s *TaskStore) Add(f Fields) (model.Task, error) {
	s.mustBeReady()

	f, err := s.validate(f)
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          s.ids.Next(),
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Location:    f.Location,
	}
	s.tasks = append(s.tasks, t)
	s.save()
	s.notifier.Notify(fmt.Sprintf("Task %q added successfully!", t.Title), model.SeveritySuccess)
	return t, nil
}

// Update replaces the user-supplied fields of task id. ID and Completed are kept.
func (s *TaskStore) Update(id int64, f Fields) (model.Task, error) {
	s.mustBeReady()

	f, err := s.validate(f)
	if err != nil {
		return model.Task{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("update task %d: %w", id, ErrNotFound)
	}

	t := &s.tasks[i]
	t.Title = f.Title
	t.Description = f.Description
	t.DueDate = f.DueDate
	t.Priority = f.Priority
	t.Location = f.Location

	updated := *t
	s.save()
	s.notifier.Notify(fmt.Sprintf("Task %q updated successfully!", updated.Title), model.SeveritySuccess)
	return updated, nil
}

// ToggleComplete flips the completed flag of task id and returns the new value.
func (s *TaskStore) ToggleComplete(id int64) (bool, error) {
	s.mustBeReady()

	i := s.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("toggle task %d: %w", id, ErrNotFound)
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	t := s.tasks[i]
	s.save()

	status := "marked as pending"
	if t.Completed {
		status = "completed"
	}
	s.notifier.Notify(fmt.Sprintf("Task %q %s!", t.Title, status), model.SeveritySuccess)
	return t.Completed, nil
}

// Delete removes task id. confirmed carries the user's answer to the
// confirmation prompt; false leaves the list untouched and returns ErrCancelled.
func (s *TaskStore) Delete(id int64, confirmed bool) (model.Task, error) {
	s.mustBeReady()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("delete task %d: %w", id, ErrNotFound)
	}
	if !confirmed {
		return model.Task{}, ErrCancelled
	}

	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.save()
	s.notifier.Notify(fmt.Sprintf("Task %q deleted successfully!", removed.Title), model.SeveritySuccess)
	return removed, nil
}

// Get returns task id.
func (s *TaskStore) Get(id int64) (model.Task, error) {
	s.mustBeReady()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	return s.tasks[i], nil
}

// Tasks returns a copy of the list in creation order.
func (s *TaskStore) Tasks() []model.Task {
	s.mustBeReady()
	return slices.Clone(s.tasks)
}

// Latest returns the most recently created task.
func (s *TaskStore) Latest() (model.Task, bool) {
	s.mustBeReady()
	if len(s.tasks) == 0 {
		return model.Task{}, false
	}
	latest := s.tasks[0]
	for _, t := range s.tasks[1:] {
		if t.ID > latest.ID {
			latest = t
		}
	}
	return latest, true
}

// Summary counts total, completed and pending tasks.
func (s *TaskStore) Summary() model.Summary {
	s.mustBeReady()

	sum := model.Summary{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			sum.Completed++
		}
	}
	sum.Pending = sum.Total - sum.Completed
	return sum
}
