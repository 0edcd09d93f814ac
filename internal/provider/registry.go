package provider

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider kinds understood by Build.
const (
	KindDDGIA     = "ddg_ia"
	KindWikipedia = "wikipedia"
	KindWikidata  = "wikidata"
	KindDDGWeb    = "ddg_web"
	KindOpenAI    = "openai"
)

// Spec describes one entry of the provider registry.
type Spec struct {
	Kind     string        `yaml:"kind"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Disabled bool          `yaml:"disabled"`
}

// RegistryFile is the YAML layout of PROVIDERS_FILE.
type RegistryFile struct {
	Providers []Spec `yaml:"providers"`
}

// LoadRegistryFile reads an ordered provider list from a YAML file.
func LoadRegistryFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	var file RegistryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}
	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("registry file %s lists no providers", path)
	}
	return file.Providers, nil
}

// SpecsFromNames turns a list of kinds into default specs.
func SpecsFromNames(names []string) []Spec {
	specs := make([]Spec, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		specs = append(specs, Spec{Kind: n})
	}
	return specs
}

// Build constructs providers in registry order. Disabled entries are skipped.
func Build(specs []Spec, opts Options, llm LLMConfig) ([]Provider, error) {
	providers := make([]Provider, 0, len(specs))
	for _, s := range specs {
		if s.Disabled {
			continue
		}
		o := opts
		if s.BaseURL != "" {
			o.BaseURL = s.BaseURL
		}
		if s.Timeout > 0 {
			o.Timeout = s.Timeout
		}

		switch s.Kind {
		case KindDDGIA:
			providers = append(providers, NewDuckDuckGoIA(o))
		case KindWikipedia:
			providers = append(providers, NewWikipedia(o))
		case KindWikidata:
			providers = append(providers, NewWikidata(o))
		case KindDDGWeb:
			providers = append(providers, NewDuckDuckGoWeb(o))
		case KindOpenAI:
			p, err := NewOpenAI(llm, o)
			if err != nil {
				return nil, fmt.Errorf("build %s provider: %w", s.Kind, err)
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("unknown provider kind %q", s.Kind)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}
	return providers, nil
}
