package fs

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/byxorna/cafes/pkg/db"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStore(t *testing.T) {
	s, err := NewStore("")
	require.NoError(t, err)

	assert.Equal(t, EmbeddedSource, s.Source())
	assert.Equal(t, 7, s.Count())

	cafes := s.List()
	require.Len(t, cafes, 7)
	for i, c := range cafes {
		assert.Equal(t, v1.ID(i+1), c.ID, "store order must follow the document")
	}

	c, err := s.Get(6)
	require.NoError(t, err)
	assert.Equal(t, "Cozy Corner Books", c.Name)
	assert.Nil(t, c.Address)
	assert.Nil(t, c.City)
	require.NotNil(t, c.Crowd)
	assert.Equal(t, v1.CrowdMedium, c.Crowd.Afternoon)
	assert.Equal(t, 24, cafes[2].OpenHours.Close)
}

func TestListIsACopy(t *testing.T) {
	s, err := NewStore("")
	require.NoError(t, err)

	first := s.List()
	first[0], first[1] = first[1], first[0]

	again := s.List()
	assert.Equal(t, v1.ID(1), again[0].ID)
	assert.Equal(t, v1.ID(2), again[1].ID)
}

func TestGetUnknown(t *testing.T) {
	s, err := NewStore("")
	require.NoError(t, err)

	_, err = s.Get(42)
	assert.True(t, errors.Is(err, db.ErrNoCafeFound))
}

func TestFailsFastWithoutRecords(t *testing.T) {
	testcases := map[string]string{
		"empty document": "",
		"empty list":     "cafes: []\n",
		"other keys":     "shops:\n  - id: 1\n",
	}

	for name, doc := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := NewStoreFromReader(name, strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, db.ErrNoRecords), "got %v", err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNoRecords))
}

func TestLoadFromFile(t *testing.T) {
	doc := `cafes:
  - id: 10
    name: Filter Coffee House
    address: 12 Janpath
    city: Bhubaneswar
    lat: 20.27
    lng: 85.84
    wifi: false
    sockets: low
    ac: false
    bestFor: []
    openHours: {open: 6, close: 12}
    rating: 4.5
`
	path := filepath.Join(t.TempDir(), "cafes.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(doc), 0600))

	s, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source())

	c, err := s.Get(10)
	require.NoError(t, err)
	assert.Equal(t, "12 Janpath", c.AddressText())
	assert.Equal(t, "Bhubaneswar", c.CityText())
	assert.Nil(t, c.Crowd)
	require.NotNil(t, c.Rating)
	assert.Equal(t, 4.5, *c.Rating)
	assert.Empty(t, c.BestFor)
}

func TestRejectsInvalidRecords(t *testing.T) {
	testcases := map[string]string{
		"duplicate id": `cafes:
  - {id: 1, name: A, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 20}}
  - {id: 1, name: B, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 20}}
`,
		"bad socket tier": `cafes:
  - {id: 1, name: A, lat: 1, lng: 1, sockets: plenty, openHours: {open: 8, close: 20}}
`,
		"missing name": `cafes:
  - {id: 1, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 20}}
`,
		"latitude out of range": `cafes:
  - {id: 1, name: A, lat: 91, lng: 1, sockets: low, openHours: {open: 8, close: 20}}
`,
		"closing hour out of range": `cafes:
  - {id: 1, name: A, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 25}}
`,
		"bad crowd level": `cafes:
  - {id: 1, name: A, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 20}, crowd: {morning: packed, afternoon: low, evening: low}}
`,
	}

	for name, doc := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := NewStoreFromReader(name, strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDuplicateIDSentinel(t *testing.T) {
	doc := `cafes:
  - {id: 3, name: A, lat: 1, lng: 1, sockets: low, openHours: {open: 8, close: 20}}
  - {id: 3, name: B, lat: 1, lng: 1, sockets: high, openHours: {open: 8, close: 20}}
`
	_, err := NewStoreFromReader("dupes", strings.NewReader(doc))
	assert.True(t, errors.Is(err, db.ErrDuplicateID))
}
