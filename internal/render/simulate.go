package render

import (
	"hash/fnv"
	"math/rand"

	"github.com/Divyaprada-G/cropmap/internal/geo"
)

const (
	simulateGridSize = 8
	simulateJitter   = 0.3
)

// SimulateOverlay builds a synthetic crop-distribution grid for requests
// that carry statistics but no classification polygons. The box is divided
// into an 8x8 grid; each cell is assigned a crop weighted by the statistics
// percentages and jittered by up to ±30% of a cell. Seeding hashes the box's
// string form reduced modulo 2^32, so the same box always yields the same
// overlay.
func SimulateOverlay(b geo.BoundingBox, stats []AreaStat) geo.FeatureCollection {
	fc := geo.FeatureCollection{Type: "FeatureCollection"}
	if len(stats) == 0 {
		return fc
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(b.String()))
	rng := rand.New(rand.NewSource(int64(h.Sum32())))

	total := 0.0
	for _, s := range stats {
		total += s.Percentage
	}
	if total <= 0 {
		return fc
	}

	latStep := b.LatSpan() / simulateGridSize
	lonStep := b.LonSpan() / simulateGridSize

	for i := 0; i < simulateGridSize; i++ {
		for j := 0; j < simulateGridSize; j++ {
			lat1 := b.MinLat + float64(i)*latStep
			lat2 := b.MinLat + float64(i+1)*latStep
			lon1 := b.MinLon + float64(j)*lonStep
			lon2 := b.MinLon + float64(j+1)*lonStep

			stat := weightedChoice(rng, stats, total)

			latOffset := (rng.Float64() - 0.5) * latStep * simulateJitter
			lonOffset := (rng.Float64() - 0.5) * lonStep * simulateJitter

			ring := [][2]float64{
				{lon1 + lonOffset, lat1 + latOffset},
				{lon2 + lonOffset, lat1 + latOffset},
				{lon2 + lonOffset, lat2 + latOffset},
				{lon1 + lonOffset, lat2 + latOffset},
				{lon1 + lonOffset, lat1 + latOffset},
			}

			fc.Features = append(fc.Features, geo.Feature{
				Type: "Feature",
				Geometry: geo.Geometry{
					Type:        "Polygon",
					Coordinates: [][][2]float64{ring},
				},
				Properties: map[string]interface{}{
					"crop_id":   stat.CropID,
					"crop_name": stat.CropName,
					"color":     stat.Color,
				},
			})
		}
	}

	return fc
}

func weightedChoice(rng *rand.Rand, stats []AreaStat, total float64) AreaStat {
	r := rng.Float64() * total
	acc := 0.0
	for _, s := range stats {
		acc += s.Percentage
		if r < acc {
			return s
		}
	}
	return stats[len(stats)-1]
}
