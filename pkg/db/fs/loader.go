package fs

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/byxorna/cafes/pkg/db"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	// EmbeddedSource is reported by Source() when no data file was given
	EmbeddedSource = "embedded"
)

var (
	//go:embed default_cafes.yaml
	defaultCafes []byte
)

type document struct {
	Cafes []*v1.Cafe `yaml:"cafes"`
}

// Store holds the cafe records in the order they were declared. It is filled
// once by NewStore and never changes afterwards, so it needs no locking.
type Store struct {
	source string
	cafes  []*v1.Cafe
	byID   map[v1.ID]*v1.Cafe
}

// NewStore loads cafes from the YAML file at path, or from the embedded
// default document when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return NewStoreFromReader(EmbeddedSource, bytes.NewReader(defaultCafes))
	}

	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %v: %w", expandedPath, err, db.ErrNoRecords)
	}
	defer f.Close()

	return NewStoreFromReader(expandedPath, f)
}

func NewStoreFromReader(source string, r io.Reader) (*Store, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", source, err)
	}

	var doc document
	err = yaml.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal %s: %w", source, err)
	}

	if len(doc.Cafes) == 0 {
		return nil, fmt.Errorf("%s: %w", source, db.ErrNoRecords)
	}

	s := Store{
		source: source,
		cafes:  make([]*v1.Cafe, 0, len(doc.Cafes)),
		byID:   map[v1.ID]*v1.Cafe{},
	}

	for i, c := range doc.Cafes {
		if c == nil {
			return nil, fmt.Errorf("%s: empty record at position %d", source, i)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid record at position %d: %w", source, i, err)
		}
		if _, ok := s.byID[c.ID]; ok {
			return nil, fmt.Errorf("%s: %w %d", source, db.ErrDuplicateID, c.ID)
		}
		s.byID[c.ID] = c
		s.cafes = append(s.cafes, c)
	}

	return &s, nil
}

func (x *Store) List() []*v1.Cafe {
	out := make([]*v1.Cafe, len(x.cafes))
	copy(out, x.cafes)
	return out
}

func (x *Store) Count() int { return len(x.cafes) }

func (x *Store) Get(id v1.ID) (*v1.Cafe, error) {
	c, ok := x.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", db.ErrNoCafeFound, id)
	}
	return c, nil
}

func (x *Store) Source() string { return x.source }
