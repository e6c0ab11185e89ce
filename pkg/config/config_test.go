package config

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default, *c)
	assert.Equal(t, 5*time.Second, c.Geolocation.Timeout)
	assert.Equal(t, v1.DefaultPurposes, c.Purposes)
}

func TestOverrides(t *testing.T) {
	doc := `
data: ~/cafes.yaml
center: {lat: 20.2961, lng: 85.8245}
zoom: 14
geolocation:
  enabled: false
  timeout: 2s
purposes: [study, work]
ascii: true
logLevel: debug
`
	c, err := NewFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "~/cafes.yaml", c.Data)
	assert.Equal(t, Location{Lat: 20.2961, Lng: 85.8245}, c.Center)
	assert.Equal(t, 14, c.Zoom)
	assert.False(t, c.Geolocation.Enabled)
	assert.Equal(t, 2*time.Second, c.Geolocation.Timeout)
	assert.Equal(t, Default.Geolocation.Endpoint, c.Geolocation.Endpoint, "unset keys keep their defaults")
	assert.Equal(t, []v1.Purpose{v1.PurposeStudy, v1.PurposeWork}, c.Purposes)
	assert.True(t, c.ASCII)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestInvalid(t *testing.T) {
	testcases := map[string]string{
		"zoom too far":       "zoom: 25\n",
		"duplicate purposes": "purposes: [work, work]\n",
		"no purposes":        "purposes: []\n",
		"bad latitude":       "center: {lat: 100, lng: 0}\n",
		"bad log level":      "logLevel: loud\n",
		"bad endpoint":       "geolocation: {endpoint: 'not a url'}\n",
		"not yaml":           "zoom: [\n",
	}
	for name, doc := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := NewFromReader(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default, *c)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("zoom: 9\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Zoom)
}

func TestLocationPoint(t *testing.T) {
	p := Default.Center.Point()
	assert.Equal(t, 78.9629, p.Lon())
	assert.Equal(t, 20.5937, p.Lat())
}
