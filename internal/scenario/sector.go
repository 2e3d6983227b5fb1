package scenario

import (
	"fmt"

	"github.com/yegors/airscen/pkg/geo"
)

// CapacitySlots is the number of 15 minute capacity intervals in a day:
// slot 0 covers 00:00-00:15, slot 95 covers 23:45-24:00.
const CapacitySlots = 96

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Sector is a bounded airspace region: a boundary polygon, optional vertical
// band and centroid, and a fixed-length time-sliced capacity profile.
type Sector struct {
	name          string
	polygon       [][2]float64 // (lat, lon) vertices
	capacity      [CapacitySlots]int
	centroid      *Point
	lowerAltitude *float64
	upperAltitude *float64
}

// NewSector builds a sector from a boundary given as [lat, lon] rows; the
// boundary need not repeat its first vertex. A nil capacity initializes all
// slots to zero; a supplied capacity must have exactly 96 values. Centroid
// and altitude bounds are optional and stored as supplied, unvalidated.
func NewSector(name string, polygon [][]float64, capacity []int, centroid *Point, lowerAltitude, upperAltitude *float64) (*Sector, error) {
	poly := make([][2]float64, len(polygon))
	for i, v := range polygon {
		if len(v) != 2 {
			return nil, newValidationError(CategoryDimension, "polygon", "each vertex must be a [lat, lon] pair, got %d values", len(v))
		}
		poly[i] = [2]float64{v[0], v[1]}
	}

	s := &Sector{
		name:    name,
		polygon: poly,
	}

	if capacity != nil {
		if len(capacity) != CapacitySlots {
			return nil, newValidationError(CategoryDimension, "capacity", "expected %d slot values (15 minute intervals), got %d", CapacitySlots, len(capacity))
		}
		copy(s.capacity[:], capacity)
	}

	if centroid != nil {
		c := *centroid
		s.centroid = &c
	}
	if lowerAltitude != nil {
		v := *lowerAltitude
		s.lowerAltitude = &v
	}
	if upperAltitude != nil {
		v := *upperAltitude
		s.upperAltitude = &v
	}

	return s, nil
}

// SetCapacity assigns one slot in place. The index must be within [0, 95].
func (s *Sector) SetCapacity(index, value int) error {
	if index < 0 || index >= CapacitySlots {
		return newValidationError(CategoryIndex, "capacity", "slot index %d out of range [0, %d]", index, CapacitySlots-1)
	}
	s.capacity[index] = value
	return nil
}

// GetCapacity reads one slot. The index must be within [0, 95].
func (s *Sector) GetCapacity(index int) (int, error) {
	if index < 0 || index >= CapacitySlots {
		return 0, newValidationError(CategoryIndex, "capacity", "slot index %d out of range [0, %d]", index, CapacitySlots-1)
	}
	return s.capacity[index], nil
}

// Capacity returns a copy of the full 96-slot profile.
func (s *Sector) Capacity() []int {
	out := make([]int, CapacitySlots)
	copy(out, s.capacity[:])
	return out
}

func (s *Sector) Name() string {
	return s.name
}

// Polygon returns a copy of the boundary vertices in order.
func (s *Sector) Polygon() []Point {
	out := make([]Point, len(s.polygon))
	for i, v := range s.polygon {
		out[i] = Point{Lat: v[0], Lon: v[1]}
	}
	return out
}

// Centroid returns the stored centroid, if one was supplied.
func (s *Sector) Centroid() (Point, bool) {
	if s.centroid == nil {
		return Point{}, false
	}
	return *s.centroid, true
}

// LowerAltitude returns the stored lower vertical bound, if one was supplied.
func (s *Sector) LowerAltitude() (float64, bool) {
	if s.lowerAltitude == nil {
		return 0, false
	}
	return *s.lowerAltitude, true
}

// UpperAltitude returns the stored upper vertical bound, if one was supplied.
func (s *Sector) UpperAltitude() (float64, bool) {
	if s.upperAltitude == nil {
		return 0, false
	}
	return *s.upperAltitude, true
}

// Contains reports whether the point lies inside the boundary polygon.
func (s *Sector) Contains(lat, lon float64) bool {
	return geo.PointInPolygon(lat, lon, s.polygon)
}

// ContainsAltitude reports whether the altitude falls within the vertical
// band. Missing bounds are open ended.
func (s *Sector) ContainsAltitude(alt float64) bool {
	if s.lowerAltitude != nil && alt < *s.lowerAltitude {
		return false
	}
	if s.upperAltitude != nil && alt > *s.upperAltitude {
		return false
	}
	return true
}

// RoughArea returns a comparative area measure of the boundary polygon.
func (s *Sector) RoughArea() float64 {
	return geo.RoughArea(s.polygon)
}

func (s *Sector) String() string {
	return fmt.Sprintf("Sector %s (%d boundary vertices)", s.name, len(s.polygon))
}
