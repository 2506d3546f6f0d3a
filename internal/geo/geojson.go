package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties"`
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
}

// Geometry represents the geometry of a feature. Only Polygon geometries are
// drawn by the overlay renderer; coordinates are rings of [Lon, Lat] pairs.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// ColorHex returns the feature's configured color, or the given default when
// the property is absent or not a string.
func (f Feature) ColorHex(fallback string) string {
	if v, ok := f.Properties["color"].(string); ok && v != "" {
		return v
	}
	return fallback
}
