package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

var (
	// Default is the configuration used when ~/.cafes.yaml is missing, and
	// the base that a config file is merged over.
	Default = Config{
		Center:   Location{Lat: 20.5937, Lng: 78.9629},
		Zoom:     5,
		Purposes: v1.DefaultPurposes,
		Geolocation: Geolocation{
			Enabled:  true,
			Endpoint: "http://ip-api.com/json",
			Timeout:  5 * time.Second,
		},
		LogLevel: "info",
	}
)

type Config struct {
	// Data is a YAML file of cafes. Empty means the built in list.
	Data        string       `yaml:"data,omitempty" validate:""`
	Center      Location     `yaml:"center"`
	Zoom        int          `yaml:"zoom" validate:"min=3,max=19"`
	Geolocation Geolocation  `yaml:"geolocation"`
	Purposes    []v1.Purpose `yaml:"purposes,flow" validate:"required,min=1,max=9,unique"`
	ASCII       bool         `yaml:"ascii" validate:""`
	LogLevel    string       `yaml:"logLevel" validate:"oneof=trace debug info warn error disabled"`
}

// Location is the fallback map center.
type Location struct {
	Lat float64 `yaml:"lat" validate:"min=-90,max=90"`
	Lng float64 `yaml:"lng" validate:"min=-180,max=180"`
}

// Point returns the location in orb's lng, lat order.
func (l Location) Point() orb.Point { return orb.Point{l.Lng, l.Lat} }

type Geolocation struct {
	Enabled  bool          `yaml:"enabled" validate:""`
	Endpoint string        `yaml:"endpoint" validate:"omitempty,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=0"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	validate := validator.New()
	err = validate.Struct(c)
	if err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &c, nil
}

// Load reads the config file at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			c := Default
			return &c, nil
		}
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	defer f.Close()

	cfg, err := NewFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration %s: %w", expandedPath, err)
	}
	return cfg, nil
}
