package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/validate"
)

//go:embed data/catalog.yaml
var builtin []byte

// ErrEmpty means no valid concept survived filtering.
var ErrEmpty = errors.New("no valid concepts")

// LoadError reports a catalog that could not be used.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type document struct {
	Zones      []Zone     `yaml:"zones"`
	Challenges []Template `yaml:"challenges"`
	Concepts   []any      `yaml:"concepts"`
}

// Load parses a YAML (or JSON) catalog document. Malformed concepts, zones,
// and templates are logged and skipped; a document with no valid concepts
// is an error.
func Load(data []byte, source string, log *logging.Logger) (*Catalog, error) {
	log = logging.OrNop(log)

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	concepts := make([]Concept, 0, len(doc.Concepts))
	seen := map[string]bool{}
	for i, raw := range doc.Concepts {
		con, err := decodeConcept(raw)
		if err != nil {
			log.Warn("skipping invalid concept", "source", source, "index", i, "error", err)
			continue
		}
		if seen[con.ID] {
			log.Warn("skipping duplicate concept", "source", source, "id", con.ID)
			continue
		}
		seen[con.ID] = true
		concepts = append(concepts, con)
	}
	if len(concepts) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmpty}
	}

	zones := make([]Zone, 0, len(doc.Zones))
	for _, z := range doc.Zones {
		if !z.normalize() {
			log.Warn("skipping invalid zone", "source", source, "id", z.ID)
			continue
		}
		zones = append(zones, z)
	}
	templates := make([]Template, 0, len(doc.Challenges))
	for _, t := range doc.Challenges {
		if !t.normalize() {
			log.Warn("skipping invalid challenge", "source", source, "id", t.ID)
			continue
		}
		templates = append(templates, t)
	}

	log.Debug("catalog loaded", "source", source, "concepts", len(concepts), "zones", len(zones), "challenges", len(templates))
	return newCatalog(concepts, zones, templates), nil
}

func decodeConcept(raw any) (Concept, error) {
	if err := validate.Value(conceptSchema, raw); err != nil {
		return Concept{}, err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return Concept{}, err
	}
	var con Concept
	if err := json.Unmarshal(b, &con); err != nil {
		return Concept{}, err
	}
	if !con.normalize() {
		return Concept{}, errors.New("blank required field")
	}
	return con, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(builtin, "builtin", nil)
		if err != nil {
			panic(fmt.Sprintf("built-in catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// LoadFile reads an external catalog. Zones and challenges missing from
// the file are taken from the built-in catalog.
func LoadFile(path string, log *logging.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	c, err := Load(data, path, log)
	if err != nil {
		return nil, err
	}
	if len(c.zones) == 0 {
		def := Default()
		c.zones = def.zones
		if len(c.templates) == 0 {
			c.templates = def.templates
		}
	}
	return c, nil
}
