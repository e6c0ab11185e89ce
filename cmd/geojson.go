package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
)

func newGeoJSONCmd(global *globalFlags, clock filter.Clock) *cobra.Command {
	f := &filterFlags{}
	var pretty bool

	cmd := &cobra.Command{
		Use:   "geojson",
		Short: "Print the markers for the matching cafes as a GeoJSON FeatureCollection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.resolve(cmd, global, clock)
			if err != nil {
				return err
			}

			fc := featureCollection(q, q.result())

			var out []byte
			if pretty {
				out, err = json.MarshalIndent(fc, "", "  ")
			} else {
				out, err = fc.MarshalJSON()
			}
			if err != nil {
				return fmt.Errorf("unable to encode markers: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output")
	return cmd
}

// featureCollection holds one point feature per cafe in result order.
func featureCollection(q *query, r filter.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range r.Cafes {
		feature := geojson.NewFeature(c.Point())
		feature.ID = int64(c.ID)
		feature.Properties = properties(q, c)
		fc.Append(feature)
	}
	return fc
}

func properties(q *query, c *v1.Cafe) geojson.Properties {
	props := geojson.Properties{
		"name":    c.Name,
		"wifi":    c.WiFi,
		"ac":      c.AC,
		"sockets": string(c.Sockets),
		"seating": c.Seating,
		"bestFor": c.BestFor,
		"hours":   filter.HoursLabel(c),
		"open":    filter.IsOpenAt(c, q.now),
		"crowd":   string(filter.CrowdLabel(c, q.now)),
	}
	if c.Address != nil {
		props["address"] = *c.Address
	}
	if c.City != nil {
		props["city"] = *c.City
	}
	if c.Rating != nil {
		props["rating"] = *c.Rating
	}
	if q.from != nil {
		props["distance"] = geo.Distance(*q.from, c.Point())
	}
	return props
}
