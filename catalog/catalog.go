// Package catalog loads the fixed, ordered question list served by the bot.
// The catalog is read once at startup and is immutable afterwards.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question is a single survey question with its ordered option lines.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
}

// Catalog is the immutable ordered question list.
type Catalog struct {
	questions []Question
}

type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

// Load reads the YAML catalog file. A missing, malformed, or empty file is an error;
// the caller is expected to treat it as fatal at startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("catalog %s contains no questions", path)
	}
	for i, q := range file.Questions {
		if q.Prompt == "" {
			return nil, fmt.Errorf("catalog question %d has an empty prompt", i+1)
		}
	}

	return &Catalog{questions: file.Questions}, nil
}

// New builds a catalog from an in-memory question list (used by tests).
func New(questions []Question) *Catalog {
	return &Catalog{questions: append([]Question(nil), questions...)}
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at the given 1-based index.
func (c *Catalog) At(n int) (Question, bool) {
	if n < 1 || n > len(c.questions) {
		return Question{}, false
	}
	return c.questions[n-1], true
}
