package db

import (
	"fmt"

	"github.com/byxorna/cafes/pkg/types/v1"
)

var (
	ErrNoRecords   = fmt.Errorf("no cafe records loaded")
	ErrNoCafeFound = fmt.Errorf("no cafe found")
	ErrDuplicateID = fmt.Errorf("duplicate cafe id")
)

// Backend is the read-only record store. fs.Store implements this.
type Backend interface {
	// List returns every cafe in store order. The slice is a copy; the cafes
	// are shared and must not be modified.
	List() []*v1.Cafe
	Count() int
	Get(id v1.ID) (*v1.Cafe, error)
	// Source describes where the records were loaded from
	Source() string
}
