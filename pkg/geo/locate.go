package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/paulmach/orb"
)

const (
	DefaultEndpoint = "http://ip-api.com/json"
	DefaultTimeout  = 5 * time.Second
)

var (
	ErrLocationUnavailable = fmt.Errorf("location unavailable")
)

// Locator finds where the user is.
type Locator interface {
	Locate(ctx context.Context) (orb.Point, error)
}

// StaticLocator always answers with the same point.
type StaticLocator orb.Point

func (s StaticLocator) Locate(ctx context.Context) (orb.Point, error) {
	return orb.Point(s), nil
}

// IPLocator asks an ip-api.com compatible service where the request came from.
type IPLocator struct {
	Endpoint string
	Client   *http.Client
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *IPLocator) Locate(ctx context.Context) (orb.Point, error) {
	endpoint := l.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return orb.Point{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return orb.Point{}, fmt.Errorf("%w: %s returned %s", ErrLocationUnavailable, endpoint, resp.Status)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return orb.Point{}, fmt.Errorf("unable to decode location: %w", err)
	}
	if body.Status != "success" {
		return orb.Point{}, fmt.Errorf("%w: %s %s", ErrLocationUnavailable, body.Status, body.Message)
	}

	return orb.Point{body.Lon, body.Lat}, nil
}

// Resolution is the outcome of the startup location lookup.
type Resolution struct {
	Point orb.Point
	// Fallback is set when Point is the fallback rather than a real fix
	Fallback bool
	Err      error
}

// Resolve waits for the first of: a location, a lookup error, or the timeout.
// Errors and timeouts resolve to fallback. There is no retry.
func Resolve(ctx context.Context, l Locator, timeout time.Duration, fallback orb.Point) Resolution {
	if l == nil {
		return Resolution{Point: fallback, Fallback: true, Err: ErrLocationUnavailable}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		p   orb.Point
		err error
	}
	// buffered so a locator that ignores ctx does not leak its goroutine
	ch := make(chan answer, 1)
	go func() {
		p, err := l.Locate(ctx)
		ch <- answer{p, err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			return Resolution{Point: fallback, Fallback: true, Err: a.err}
		}
		return Resolution{Point: a.p}
	case <-ctx.Done():
		return Resolution{Point: fallback, Fallback: true, Err: ctx.Err()}
	}
}
