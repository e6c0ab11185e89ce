package app

import (
	"github.com/byxorna/cafes/pkg/db"
	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/mapview"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
)

// MarkerLayer is what the controller needs from a map. mapview.Model
// implements it.
type MarkerLayer interface {
	Place(mapview.Marker)
	Remove(id v1.ID) error
	Center(orb.Point)
	SetUserLocation(orb.Point)
}

// Event is a user or system input delivered to Controller.Dispatch.
type Event interface {
	isEvent()
}

type SearchChanged struct{ Query string }

type ToggleChanged struct {
	Kind  filter.Amenity
	Value bool
}

type PurposeClicked struct{ Purpose v1.Purpose }

type ResetClicked struct{}

// CafeSelected moves the highlight to one cafe. An id outside the current
// result clears it.
type CafeSelected struct{ ID v1.ID }

// LocationResolved arrives once, when the startup location lookup finishes
// (successfully or not).
type LocationResolved struct {
	Location orb.Point
	Fallback bool
}

func (SearchChanged) isEvent()    {}
func (ToggleChanged) isEvent()    {}
func (PurposeClicked) isEvent()   {}
func (ResetClicked) isEvent()     {}
func (CafeSelected) isEvent()     {}
func (LocationResolved) isEvent() {}

// AppState is the whole mutable state of a session. There is exactly one,
// owned by the Controller for the lifetime of the program.
type AppState struct {
	Filter  filter.State
	Result  filter.Result
	Markers map[v1.ID]struct{}

	// Selected is zero when nothing is highlighted
	Selected v1.ID

	// User is nil until the location lookup has finished
	User         *orb.Point
	UserFallback bool
}

// Controller applies events to the AppState and keeps the marker layer in step
// with the filtered result. It is not safe for concurrent use; every event is
// expected to come from the single UI loop.
type Controller struct {
	records []*v1.Cafe
	layer   MarkerLayer
	log     zerolog.Logger
	state   AppState
}

// NewController loads the records from backend and computes the unfiltered
// result. Markers are not placed until a layer is attached.
func NewController(backend db.Backend, log zerolog.Logger) (*Controller, error) {
	records := backend.List()
	if len(records) == 0 {
		return nil, db.ErrNoRecords
	}

	c := Controller{
		records: records,
		log:     log,
	}
	c.state.Result = filter.Apply(c.records, c.state.Filter)
	c.state.Markers = map[v1.ID]struct{}{}
	return &c, nil
}

// Attach hands the controller its marker layer and draws the current result
// on it.
func (c *Controller) Attach(layer MarkerLayer) {
	c.layer = layer
	c.state.Markers = map[v1.ID]struct{}{}
	c.reconcile(c.state.Result)
}

// Dispatch is the only way state changes.
func (c *Controller) Dispatch(e Event) {
	before := c.state.Filter

	switch e := e.(type) {
	case SearchChanged:
		c.state.Filter = c.state.Filter.SetSearch(e.Query)
	case ToggleChanged:
		c.state.Filter = c.state.Filter.SetAmenity(e.Kind, e.Value)
	case PurposeClicked:
		c.state.Filter = c.state.Filter.SelectPurpose(e.Purpose)
	case ResetClicked:
		c.state.Filter = c.state.Filter.Reset()
	case LocationResolved:
		c.locationResolved(e)
		return
	case CafeSelected:
		c.selectCafe(e.ID)
		return
	default:
		c.log.Warn().Msgf("ignoring unknown event %T", e)
		return
	}

	c.log.Debug().
		Interface("event", e).
		Interface("before", before).
		Interface("after", c.state.Filter).
		Msg("filter state changed")

	c.refilter()
}

func (c *Controller) locationResolved(e LocationResolved) {
	p := e.Location
	c.state.User = &p
	c.state.UserFallback = e.Fallback

	c.log.Info().
		Float64("lat", p.Lat()).
		Float64("lng", p.Lon()).
		Bool("fallback", e.Fallback).
		Msg("location resolved")

	if c.layer != nil {
		c.layer.Center(p)
		c.layer.SetUserLocation(p)
	}
}

// selector is implemented by layers that can highlight a marker.
type selector interface {
	Select(v1.ID)
}

func (c *Controller) selectCafe(id v1.ID) {
	if _, ok := c.state.Markers[id]; !ok {
		id = 0
	}
	c.state.Selected = id
	if s, ok := c.layer.(selector); ok {
		s.Select(id)
	}
}

func (c *Controller) refilter() {
	result := filter.Apply(c.records, c.state.Filter)
	c.log.Debug().Int("count", result.Count).Msg("filtered cafes")
	c.reconcile(result)
}

// reconcile patches the layer so it shows exactly result. The result and the
// marker set are swapped in together once the layer is patched, so Markers()
// never mixes two results.
func (c *Controller) reconcile(result filter.Result) {
	if c.layer == nil {
		c.state.Result = result
		return
	}

	wanted := make(map[v1.ID]struct{}, len(result.Cafes))
	for _, cafe := range result.Cafes {
		wanted[cafe.ID] = struct{}{}
	}

	for id := range c.state.Markers {
		if _, keep := wanted[id]; keep {
			continue
		}
		if err := c.layer.Remove(id); err != nil {
			c.log.Error().Err(err).Int64("id", int64(id)).Msg("unable to remove marker")
		}
	}

	for _, cafe := range result.Cafes {
		if _, placed := c.state.Markers[cafe.ID]; placed {
			continue
		}
		c.layer.Place(mapview.Marker{ID: cafe.ID, Point: cafe.Point(), Label: cafe.Name})
	}

	c.state.Result, c.state.Markers = result, wanted
	if _, ok := wanted[c.state.Selected]; !ok && c.state.Selected != 0 {
		c.selectCafe(0)
	}
}

// State returns a copy of the current state.
func (c *Controller) State() AppState {
	s := c.state
	s.Markers = make(map[v1.ID]struct{}, len(c.state.Markers))
	for id := range c.state.Markers {
		s.Markers[id] = struct{}{}
	}
	return s
}

func (c *Controller) Filter() filter.State  { return c.state.Filter }
func (c *Controller) Result() filter.Result { return c.state.Result }
func (c *Controller) Records() []*v1.Cafe   { return c.records }

// Markers reports the ids currently drawn, in result order.
func (c *Controller) Markers() []v1.ID {
	ids := make([]v1.ID, 0, len(c.state.Markers))
	for _, cafe := range c.state.Result.Cafes {
		if _, ok := c.state.Markers[cafe.ID]; ok {
			ids = append(ids, cafe.ID)
		}
	}
	return ids
}

func (c *Controller) ResultsLabel() string {
	return filter.ResultsLabel(c.state.Result.Count)
}

func (c *Controller) ShowReset() bool {
	return c.state.Filter.HasActiveFilters()
}
