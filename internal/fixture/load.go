package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cardsearch/internal/store"
)

//go:embed schema.cue
var catalogSchema string

// LoadError reports a catalog that could not be read or decoded.
type LoadError struct {
	File    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// ParseYAML decodes a YAML catalog. Unknown fields are errors.
func ParseYAML(name string, data []byte) (*Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, &LoadError{File: name, Message: fmt.Sprintf("parse YAML: %v", err)}
	}
	return &catalog, nil
}

// ParseCUE unifies a CUE catalog with the catalog schema and decodes it.
func ParseCUE(name string, data []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(catalogSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(name, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(name, err)
	}

	var catalog Catalog
	if err := unified.Decode(&catalog); err != nil {
		return nil, cueLoadError(name, err)
	}
	return &catalog, nil
}

// cueLoadError keeps the position of the first CUE error.
func cueLoadError(name string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{File: name, Message: err.Error()}
	}
	first := errs[0]
	loadErr := &LoadError{File: name, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}

// ReadFile reads a catalog, choosing the decoder by extension: .yaml and
// .yml for YAML, .cue for CUE.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, &LoadError{File: path, Message: "unsupported catalog format (want .yaml, .yml or .cue)"}
	}
}

// Load reads every catalog in paths and writes all cards to st in one
// transaction. It returns the number of cards written.
func Load(ctx context.Context, st *store.Store, paths ...string) (int, error) {
	var cards []store.Card
	for _, path := range paths {
		catalog, err := ReadFile(path)
		if err != nil {
			return 0, err
		}
		fileCards, err := catalog.StoreCards()
		if err != nil {
			return 0, &LoadError{File: path, Message: err.Error()}
		}
		cards = append(cards, fileCards...)
	}

	if err := st.InsertCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("load catalogs: %w", err)
	}
	return len(cards), nil
}
