package geohash

import (
	"fmt"
	"strings"
)

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

const (
	MinPrecision = 1
	MaxPrecision = 10
)

type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Box is the bounding box a cell identifier decodes to.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (b Box) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}

func (b Box) Height() float64 {
	return b.MaxLat - b.MinLat
}

func (b Box) Width() float64 {
	return b.MaxLng - b.MinLng
}

// Encode maps a coordinate to a base-32 cell identifier of the given length by
// bisecting the latitude and longitude ranges, one bit per axis per step,
// longitude first. Same inputs always produce the same string.
func Encode(lat, lng float64, precision int) string {
	minLat, maxLat := -90.0, 90.0
	minLng, maxLng := -180.0, 180.0

	var sb strings.Builder
	even := true
	bit := 0
	ch := 0

	for sb.Len() < precision {
		if even {
			mid := (minLng + maxLng) / 2
			if lng >= mid {
				ch = ch<<1 | 1
				minLng = mid
			} else {
				ch = ch << 1
				maxLng = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				ch = ch<<1 | 1
				minLat = mid
			} else {
				ch = ch << 1
				maxLat = mid
			}
		}
		even = !even

		bit++
		if bit == 5 {
			sb.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return sb.String()
}

// Decode restores the bounding box of a cell identifier.
func Decode(cell string) (Box, error) {
	if cell == "" {
		return Box{}, fmt.Errorf("empty cell")
	}

	box := Box{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}
	even := true

	for i := 0; i < len(cell); i++ {
		idx := strings.IndexByte(base32, cell[i])
		if idx < 0 {
			return Box{}, fmt.Errorf("invalid cell character %q", cell[i])
		}

		for mask := 16; mask > 0; mask >>= 1 {
			if even {
				mid := (box.MinLng + box.MaxLng) / 2
				if idx&mask != 0 {
					box.MinLng = mid
				} else {
					box.MaxLng = mid
				}
			} else {
				mid := (box.MinLat + box.MaxLat) / 2
				if idx&mask != 0 {
					box.MinLat = mid
				} else {
					box.MaxLat = mid
				}
			}
			even = !even
		}
	}

	return box, nil
}

// Adjacent returns the neighboring cell at the same precision: it shifts the
// cell's center one cell width (or height) in the requested direction and
// re-encodes. Composable: Adjacent(Adjacent(c, North), North) is two rows north.
func Adjacent(cell string, dir Direction) (string, error) {
	box, err := Decode(cell)
	if err != nil {
		return "", err
	}

	lat, lng := box.Center()
	switch dir {
	case North:
		lat += box.Height()
	case South:
		lat -= box.Height()
	case East:
		lng += box.Width()
	case West:
		lng -= box.Width()
	default:
		return "", fmt.Errorf("unknown direction %d", dir)
	}

	// wrap across the antimeridian
	if lng > 180 {
		lng -= 360
	} else if lng < -180 {
		lng += 360
	}

	return Encode(lat, lng, len(cell)), nil
}

// Neighborhood builds the fixed 5-row by 3-column grid around a cell, two rows
// north and south, one column east and west. The order is a contract consumed
// by the feed queries: NNW, NN, NNE, NW, N, NE, W, center, E, SW, S, SE, SSW,
// SS, SSE. The grid is taller than wide to bias coverage toward north-south
// movement.
func Neighborhood(cell string) ([]string, error) {
	north, err := Adjacent(cell, North)
	if err != nil {
		return nil, err
	}
	north2, err := Adjacent(north, North)
	if err != nil {
		return nil, err
	}
	south, err := Adjacent(cell, South)
	if err != nil {
		return nil, err
	}
	south2, err := Adjacent(south, South)
	if err != nil {
		return nil, err
	}

	grid := make([]string, 0, 15)
	for _, row := range []string{north2, north, cell, south, south2} {
		west, err := Adjacent(row, West)
		if err != nil {
			return nil, err
		}
		east, err := Adjacent(row, East)
		if err != nil {
			return nil, err
		}
		grid = append(grid, west, row, east)
	}

	return grid, nil
}

// ValidPrecision reports whether p is a supported precision level.
func ValidPrecision(p int) bool {
	return p >= MinPrecision && p <= MaxPrecision
}
