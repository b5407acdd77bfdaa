package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cardsearch/internal/engine"
	"github.com/roach88/cardsearch/internal/fixture"
)

// Scenario defines a conformance test scenario.
// A scenario loads a card catalog into a fresh store, runs a list of
// searches and checks each page against its expect clause.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalogs lists catalog files (.yaml, .yml or .cue) to load.
	// Relative paths are resolved against the scenario file's directory.
	Catalogs []string `yaml:"catalogs,omitempty"`

	// Cards are loaded after the catalogs.
	Cards []fixture.CardSpec `yaml:"cards,omitempty"`

	// Lenient runs searches with the engine's lenient syntax fallback.
	Lenient bool `yaml:"lenient,omitempty"`

	// Searches are run in order against the same engine.
	Searches []SearchStep `yaml:"searches"`
}

// SearchStep is one search and its expected page.
type SearchStep struct {
	// Query is the search string. An empty query matches every card.
	Query string `yaml:"query"`

	// Cursor is the page offset.
	Cursor int `yaml:"cursor,omitempty"`

	// Limit is the page size. Zero uses DefaultLimit.
	Limit int `yaml:"limit,omitempty"`

	// Expect specifies the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected outcome of a search.
// Unset fields are not checked.
type ExpectClause struct {
	// Names are the card names of the page, in page order.
	// An explicit empty list expects an empty page.
	Names []string `yaml:"names,omitempty"`

	// Where is the exact compiled WHERE text.
	Where string `yaml:"where,omitempty"`

	// Error is the expected search error code (e.g. SYNTAX_ERROR).
	Error string `yaml:"error,omitempty"`

	// HasMore is whether another page should follow.
	HasMore *bool `yaml:"has_more,omitempty"`

	// Lenient is whether the search should have fallen back to an
	// unfiltered search.
	Lenient *bool `yaml:"lenient,omitempty"`
}

// DefaultLimit is the page size used when a step does not set one.
const DefaultLimit = 20

var errorCodes = map[string]bool{
	string(engine.ErrCodeSyntax):       true,
	string(engine.ErrCodeInvalidQuery): true,
	string(engine.ErrCodeInvalidPage):  true,
	string(engine.ErrCodeFetchFailed):  true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Reject unknown fields (catches typos like "search:" vs "searches:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, catalog := range scenario.Catalogs {
		if !filepath.IsAbs(catalog) {
			scenario.Catalogs[i] = filepath.Join(base, catalog)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Searches) == 0 {
		return fmt.Errorf("searches list is required and must be non-empty")
	}

	for _, catalog := range s.Catalogs {
		if _, err := os.Stat(catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", catalog)
		}
	}

	for i, step := range s.Searches {
		if step.Cursor < 0 {
			return fmt.Errorf("searches[%d]: cursor must be non-negative", i)
		}
		if step.Limit < 0 {
			return fmt.Errorf("searches[%d]: limit must be non-negative", i)
		}
		if err := validateExpect(i, step.Expect); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(index int, e ExpectClause) error {
	if e.Error != "" {
		if !errorCodes[e.Error] {
			return fmt.Errorf("searches[%d].expect: unknown error code %q", index, e.Error)
		}
		if e.Names != nil || e.Where != "" || e.HasMore != nil || e.Lenient != nil {
			return fmt.Errorf("searches[%d].expect: error cannot be combined with page expectations", index)
		}
		return nil
	}
	if e.Names == nil && e.Where == "" && e.HasMore == nil && e.Lenient == nil {
		return fmt.Errorf("searches[%d].expect: at least one of names, where, error, has_more, lenient is required", index)
	}
	return nil
}
