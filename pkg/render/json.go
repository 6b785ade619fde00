package render

import (
	"encoding/json"

	"github.com/florelab/bloomforge/pkg/field"
)

// jsonOutput is the flat field description emitted by RenderJSON. It
// carries the geometry downstream tools need without the internal
// record chains.
type jsonOutput struct {
	Canvas  jsonCanvas   `json:"canvas"`
	Flowers []jsonFlower `json:"flowers"`
	Petals  []jsonPetal  `json:"petals"`
}

type jsonCanvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

type jsonFlower struct {
	ID           int     `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	CenterRadius float64 `json:"center_radius"`
	BaseAngle    float64 `json:"base_angle"`
	Petals       int     `json:"petals"`
}

type jsonPetal struct {
	FlowerID int     `json:"flower_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

// RenderJSON emits a flat JSON description of the field: one entry per
// flower with its center geometry, one entry per grown petal end.
func RenderJSON(f *field.Field) ([]byte, error) {
	out := jsonOutput{
		Canvas: jsonCanvas{
			Width:  f.Config.Canvas.Width,
			Height: f.Config.Canvas.Height,
			Margin: f.Config.Canvas.Margin,
		},
		Flowers: make([]jsonFlower, 0, len(f.Seeds)),
		Petals:  make([]jsonPetal, 0, len(f.PetalEnds)),
	}

	for _, s := range f.Seeds {
		out.Flowers = append(out.Flowers, jsonFlower{
			ID:           s.ID,
			X:            s.Pos.X,
			Y:            s.Pos.Y,
			CenterRadius: f.CenterRadius(s.ID),
			BaseAngle:    s.BaseAngle,
			Petals:       len(f.EndsOf(s.ID)),
		})
	}
	for _, p := range f.PetalEnds {
		out.Petals = append(out.Petals, jsonPetal{
			FlowerID: p.OwnerID,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			Diameter: p.Diameter,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
