package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/byxorna/cafes/pkg/config"
	"github.com/byxorna/cafes/pkg/db/fs"
	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/runtime"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const atLayout = "15:04"

// filterFlags are the flags shared by the non-interactive commands. They map
// onto the same filter transitions the interactive controls use.
type filterFlags struct {
	Search  string
	Purpose string
	WiFi    bool
	AC      bool
	Sockets bool
	At      string
	Near    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "only cafes whose name, city or address contains this text")
	cmd.Flags().StringVarP(&f.Purpose, "purpose", "p", "", "only cafes best for this purpose")
	cmd.Flags().BoolVar(&f.WiFi, "wifi", false, "only cafes with wi-fi")
	cmd.Flags().BoolVar(&f.AC, "ac", false, "only cafes with air conditioning")
	cmd.Flags().BoolVar(&f.Sockets, "sockets", false, "only cafes where charging is easy")
	cmd.Flags().StringVar(&f.At, "at", "", "time of day (HH:MM) used for crowd and opening hours, default now")
	cmd.Flags().StringVar(&f.Near, "near", "", "your location as LAT,LNG; adds distances")
}

// state builds the filter state. purposes are the tags the configuration
// knows about.
func (f filterFlags) state(purposes []v1.Purpose) (filter.State, error) {
	s := filter.State{}.SetSearch(f.Search).
		SetAmenity(filter.AmenityWiFi, f.WiFi).
		SetAmenity(filter.AmenityAC, f.AC).
		SetAmenity(filter.AmenitySockets, f.Sockets)

	if f.Purpose == "" {
		return s, nil
	}
	p := v1.Purpose(strings.ToLower(strings.TrimSpace(f.Purpose)))
	for _, known := range purposes {
		if p == known {
			return s.SelectPurpose(p), nil
		}
	}
	return s, fmt.Errorf("unknown purpose %q, expected one of %v", f.Purpose, purposes)
}

// now is base with its clock time replaced by --at, if given.
func (f filterFlags) now(base time.Time) (time.Time, error) {
	if f.At == "" {
		return base, nil
	}
	t, err := time.Parse(atLayout, f.At)
	if err != nil {
		return base, fmt.Errorf("--at must look like HH:MM: %w", err)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, base.Location()), nil
}

func (f filterFlags) near() (*orb.Point, error) {
	if f.Near == "" {
		return nil, nil
	}
	parts := strings.Split(f.Near, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("--near must look like LAT,LNG")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude in --near: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude in --near: %w", err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("--near %s is not a valid location", f.Near)
	}
	return &orb.Point{lng, lat}, nil
}

// query is a resolved run of the filter flags.
type query struct {
	cfg   *config.Config
	store *fs.Store
	state filter.State
	now   time.Time
	from  *orb.Point
	log   zerolog.Logger
}

func (f filterFlags) resolve(cmd *cobra.Command, global *globalFlags, clock filter.Clock) (*query, error) {
	cfg, err := config.Load(global.ConfigFile)
	if err != nil {
		return nil, err
	}
	log := runtime.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	store, err := fs.NewStore(cfg.Data)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("source", store.Source()).Int("count", store.Count()).Msg("loaded cafes")

	q := query{cfg: cfg, store: store, log: log}
	if q.state, err = f.state(cfg.Purposes); err != nil {
		return nil, err
	}
	if q.now, err = f.now(clock()); err != nil {
		return nil, err
	}
	if q.from, err = f.near(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (q *query) result() filter.Result {
	r := filter.Apply(q.store.List(), q.state)
	q.log.Debug().Interface("filter", q.state).Int("count", r.Count).Msg("filtered cafes")
	return r
}
