package render

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// RenderJSON renders any value as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// RenderYAML renders any value as YAML.
func (r *Renderer) RenderYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}
