package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// Format is the encoding of a script document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Script is a recorded sequence of steps.
type Script struct {
	Version     int    `json:"version"`
	Description string `json:"description,omitempty"`
	Steps       []Step `json:"steps"`
}

// Step is one command addressed by list position.
type Step struct {
	Op    string `json:"op"`
	Index int    `json:"index,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Applier executes engine commands. *todo.Engine satisfies it.
type Applier interface {
	Apply(cmd todo.Command) (bool, error)
}

// Load reads and parses a script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data, validates it against the script schema and returns the
// typed script.
func Parse(data []byte, format Format) (*Script, error) {
	normalized, err := normalize(data, format)
	if err != nil {
		return nil, err
	}

	doc, err := decodeGeneric(normalized)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	canonicalizeOps(doc)
	result := Validate(doc)
	if !result.Valid {
		return nil, fmt.Errorf("invalid script: %w", errors.Join(result.Errors...))
	}

	canonical, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	var s Script
	if err := json.Unmarshal(canonical, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// normalize converts a document of either format to JSON bytes.
func normalize(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return data, nil
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parse yaml script: %w", err)
		}
		doc, err := yamlValue(&root)
		if err != nil {
			return nil, fmt.Errorf("parse yaml script: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml script: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown script format %q", format)
}

// yamlValue converts a YAML node to plain Go values. Scalars keep their
// source text unless tagged as a number, boolean or null, so values such as
// 2024-01-01 stay strings instead of becoming timestamps.
func yamlValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float", "!!bool", "!!null":
			var v interface{}
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return v, nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

// canonicalizeOps rewrites op aliases ("delete", "begin-edit") to their
// canonical names so the schema sees one spelling per command.
func canonicalizeOps(doc interface{}) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return
	}
	steps, ok := root["steps"].([]interface{})
	if !ok {
		return
	}
	for _, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		op, ok := step["op"].(string)
		if !ok {
			continue
		}
		if kind, err := todo.ParseCommandKind(op); err == nil {
			step["op"] = string(kind)
		}
	}
}

func decodeGeneric(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Command resolves the step against the current list.
func (s Step) Command(e *todo.Engine) (todo.Command, error) {
	kind, err := todo.ParseCommandKind(s.Op)
	if err != nil {
		return todo.Command{}, err
	}
	return todo.Command{
		Kind: kind,
		ID:   resolveIndex(e, s.Index),
		Text: s.Text,
	}, nil
}

func resolveIndex(e *todo.Engine, index int) int64 {
	tasks := e.Tasks()
	if index < 1 || index > len(tasks) {
		return 0
	}
	return tasks[index-1].ID
}

// Replay runs every step in order against e. Commands go through a, which
// may wrap e (for logging); a nil a applies straight to e.
func (s *Script) Replay(e *todo.Engine, a Applier) error {
	if a == nil {
		a = e
	}
	for i, step := range s.Steps {
		cmd, err := step.Command(e)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, err := a.Apply(cmd); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
