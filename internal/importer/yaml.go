package importer

import (
	"fmt"

	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/nissyi-gh/highstill/internal/store"
	"gopkg.in/yaml.v3"
)

// YAMLTask represents a single event in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	DueDate     string `yaml:"due_date"`
	Priority    string `yaml:"priority"`
	Location    string `yaml:"location"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and adds each task to the store in order.
// It stops at the first task the store rejects.
// Returns the number of tasks created.
func Import(s *store.TaskStore, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for i, yt := range input.Tasks {
		if _, err := s.Add(yt.fields()); err != nil {
			return count, fmt.Errorf("add task %d %q: %w", i+1, yt.Title, err)
		}
		count++
	}
	return count, nil
}

func (yt YAMLTask) fields() store.Fields {
	return store.Fields{
		Title:       yt.Title,
		Description: yt.Description,
		DueDate:     yt.DueDate,
		Priority:    model.Priority(yt.Priority),
		Location:    yt.Location,
	}
}
