package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// projectFiles are checked in order; the first one present wins. now.json
// is the legacy name the tool still honors.
var projectFiles = []string{"vercel.json", "now.json"}

// Validator checks the project configuration file before any deploy runs.
// The tool itself is the authority on the full format; this preflight only
// surfaces obvious mistakes early, so every finding is a warning and never
// stops the run.
type Validator struct {
	projectSchema *jsonschema.Schema
}

// NewValidator compiles the bundled project-file schema.
func NewValidator() (*Validator, error) {
	s, err := compileSchema(projectSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to compile project schema: %w", err)
	}
	return &Validator{projectSchema: s}, nil
}

// CheckProjectFile looks for a project configuration file under dir and
// validates it. It returns the file found (empty when none) and one
// finding per violation. A missing file is not a finding.
func (v *Validator) CheckProjectFile(dir string) (string, []string, error) {
	for _, name := range projectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		findings, err := v.validateFile(path)
		if err != nil {
			return name, nil, err
		}
		return name, findings, nil
	}
	return "", nil, nil
}

func (v *Validator) validateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	doc, err := toJSONValue(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	err = v.projectSchema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return flatten(ve), nil
	}
	return nil, fmt.Errorf("failed to validate project file %s: %w", path, err)
}

// flatten walks the validation tree and keeps the leaf causes, which carry
// the actionable messages.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}

// toJSONValue parses YAML (a superset of the JSON these files hold) and
// round-trips through JSON so the validator sees canonical value types.
func toJSONValue(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// compileSchema compiles a YAML-authored schema document.
func compileSchema(schemaYAML string) (*jsonschema.Schema, error) {
	doc, err := toJSONValue([]byte(schemaYAML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	schema, err := jsonschema.CompileString("project.schema.json", string(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}
