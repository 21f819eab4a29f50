// zara/config/persona.go
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var defaultPersona []byte

// Sampling holds the fixed generation parameters sent with every completion.
type Sampling struct {
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TopP        float32 `yaml:"top_p"`
}

// Persona is the assistant identity: system prompt, candidate models in
// priority order and sampling parameters.
type Persona struct {
	Name         string   `yaml:"name"`
	SystemPrompt string   `yaml:"system_prompt"`
	Models       []string `yaml:"models"`
	Sampling     Sampling `yaml:"sampling"`
}

// LoadPersona parses the YAML file at path, or the built-in persona when
// path is empty.
func LoadPersona(path string) (*Persona, error) {
	data := defaultPersona
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read persona: %w", err)
		}
		data = b
	}
	return ParsePersona(data)
}

func ParsePersona(data []byte) (*Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse persona: %w", err)
	}
	p.SystemPrompt = strings.TrimSpace(p.SystemPrompt)
	if p.SystemPrompt == "" {
		return nil, errors.New("persona: system_prompt is empty")
	}
	models := p.Models[:0]
	for _, m := range p.Models {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, errors.New("persona: no candidate models")
	}
	p.Models = models
	if p.Sampling.MaxTokens <= 0 {
		p.Sampling.MaxTokens = 4096
	}
	return &p, nil
}
