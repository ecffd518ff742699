package configs

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed zeus.yaml
var defaultConfig []byte

// KnowledgeEntry is one hand-authored store answer keyed by a topic phrase.
type KnowledgeEntry struct {
	Key        string   `yaml:"key"`
	Answer     string   `yaml:"answer"`
	ExtraLines []string `yaml:"extra_lines"`
}

type AnalysisMode struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	MaxTokens   int    `yaml:"max_tokens" json:"max_tokens"`
	Prompt      string `yaml:"prompt" json:"-"`
}

type AnalysisConfig struct {
	SystemPrompt       string         `yaml:"system_prompt"`
	DefaultTemperature float64        `yaml:"default_temperature"`
	Modes              []AnalysisMode `yaml:"modes"`
}

// AgentConfig is loaded once at startup and never mutated afterwards.
type AgentConfig struct {
	FallbackAnswer      string           `yaml:"fallback_answer"`
	Knowledge           []KnowledgeEntry `yaml:"knowledge"`
	AdvancedSuggestions []string         `yaml:"advanced_suggestions"`
	Analysis            AnalysisConfig   `yaml:"analysis"`
}

// LoadConfig reads the agent configuration from path, or the embedded default
// when path is empty.
func LoadConfig(path string) (*AgentConfig, error) {
	data := defaultConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read agent config: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse agent config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded configuration. It panics if the embedded file
// is broken, which the package tests guard against.
func Default() *AgentConfig {
	cfg, err := Parse(defaultConfig)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *AgentConfig) validate() error {
	if strings.TrimSpace(c.FallbackAnswer) == "" {
		return fmt.Errorf("agent config: fallback_answer is required")
	}
	for i, e := range c.Knowledge {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("agent config: knowledge[%d] has an empty key", i)
		}
	}
	seen := make(map[string]bool, len(c.Analysis.Modes))
	for _, m := range c.Analysis.Modes {
		if m.ID == "" || seen[m.ID] {
			return fmt.Errorf("agent config: analysis mode id %q is empty or duplicated", m.ID)
		}
		if m.MaxTokens <= 0 {
			return fmt.Errorf("agent config: analysis mode %q needs max_tokens > 0", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Mode looks up an analysis mode by id.
func (c *AgentConfig) Mode(id string) (AnalysisMode, bool) {
	for _, m := range c.Analysis.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return AnalysisMode{}, false
}
