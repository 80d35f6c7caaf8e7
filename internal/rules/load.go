package rules

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a rule table. JSON documents share the
// same keys and are read by the same YAML decoder.
type tableFile struct {
	Name        string    `yaml:"name" validate:"required"`
	Description string    `yaml:"description,omitempty"`
	Levels      []RuleSet `yaml:"levels" validate:"required,min=1"`
}

// LoadFile reads a rule table from a YAML or JSON file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a rule table document.
func Parse(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: rules document is empty", ErrInvalidPattern)
	}

	var tf tableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(tf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	t := NewTable(tf.Name, tf.Description, tf.Levels...)
	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal encodes a table in the rule file format.
func Marshal(t *Table) ([]byte, error) {
	tf := tableFile{
		Name:        t.name,
		Description: t.description,
		Levels:      t.Levels(),
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tf); err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	return buf.Bytes(), nil
}

// Resolve picks the table to use: an explicit rules file wins over a
// built-in name, and an empty name selects DefaultRuleset.
func Resolve(name, file string) (*Table, error) {
	if file != "" {
		return LoadFile(file)
	}
	if name == "" {
		name = DefaultRuleset
	}
	return Builtin(name)
}
