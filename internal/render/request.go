package render

import (
	"encoding/json"
	"fmt"

	"github.com/Divyaprada-G/cropmap/internal/geo"
)

// Default output raster size.
const (
	DefaultWidth  = 2048
	DefaultHeight = 1536
)

// AreaStat is one classified-crop row of the statistics legend.
type AreaStat struct {
	CropID       int     `json:"crop_id"`
	CropName     string  `json:"crop_name"`
	Color        string  `json:"color"`
	Percentage   float64 `json:"percentage"`
	AreaHectares float64 `json:"area_hectares"`
}

// PointLabel is a named location marker. Lat and Lng are pointers so that
// items missing either coordinate can be detected and skipped.
type PointLabel struct {
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Name string   `json:"name"`
}

// Request carries everything needed to render one annotated satellite image.
// Bounds ordering is [minLat, minLon, maxLat, maxLon].
type Request struct {
	Bounds  [4]float64            `json:"bounds"`
	Overlay geo.FeatureCollection `json:"crop_map_data"`
	Stats   []AreaStat            `json:"area_statistics"`
	Labels  []PointLabel          `json:"location_labels"`
	Width   int                   `json:"width"`
	Height  int                   `json:"height"`
}

// ParseRequest decodes a render request document and applies size defaults.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse render request: %w", err)
	}
	req.ApplyDefaults()
	return &req, nil
}

// ApplyDefaults fills in the default output size for unset dimensions.
func (r *Request) ApplyDefaults() {
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
}

// BoundingBox returns the request bounds as a geo box.
func (r *Request) BoundingBox() geo.BoundingBox {
	return geo.NewBoundingBox(r.Bounds)
}
