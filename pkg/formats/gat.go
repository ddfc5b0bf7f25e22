// Package formats reads and writes height data in the Ragnarok Online GAT
// (Ground Altitude Table) format.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
	ErrGATNotSquare          = errors.New("GAT grid is not square")
	ErrGATTooSmall           = errors.New("height grid too small for GAT export")
	ErrZeroAltitudeScale     = errors.New("altitude scale must not be zero")
)

const gatMagic = "GRAT"

// GATVersionDefault is the version written by GATFromHeights.
var GATVersionDefault = GATVersion{Major: 1, Minor: 2}

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GATCellType represents the walkability type of a cell.
type GATCellType uint32

// Cell type constants.
const (
	GATWalkable      GATCellType = 0 // Normal walkable ground
	GATBlocked       GATCellType = 1 // Cannot walk through
	GATWater         GATCellType = 2 // Water (walkable with certain skills)
	GATWalkableWater GATCellType = 3 // Shore/shallow water
	GATSnipeable     GATCellType = 4 // Can attack over but not walk (cliffs)
	GATBlockedSnipe  GATCellType = 5 // Blocked but can shoot over
)

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	switch t {
	case GATWalkable:
		return "Walkable"
	case GATBlocked:
		return "Blocked"
	case GATWater:
		return "Water"
	case GATWalkableWater:
		return "Walkable+Water"
	case GATSnipeable:
		return "Snipeable"
	case GATBlockedSnipe:
		return "Blocked+Snipe"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable reports whether the cell type allows walking.
func (t GATCellType) IsWalkable() bool {
	return t == GATWalkable || t == GATWalkableWater
}

// IsWater reports whether the cell holds water, walkable or not.
func (t GATCellType) IsWater() bool {
	return t == GATWater || t == GATWalkableWater
}

// GATCell represents a single cell in the GAT grid.
type GATCell struct {
	// Heights contains the altitude of each corner:
	// [0] = bottom-left, [1] = bottom-right, [2] = top-left, [3] = top-right
	Heights [4]float32
	Type    GATCellType
}

// MeanAltitude returns the mean altitude of the four corners.
func (c *GATCell) MeanAltitude() float32 {
	var sum float32
	for _, h := range c.Heights {
		sum += h
	}
	return sum / 4
}

// Height converts the cell's mean altitude back to a terrain height.
func (c *GATCell) Height(altitudeScale float32) float32 {
	return -c.MeanAltitude() / altitudeScale
}

// GAT represents a parsed Ground Altitude Table file.
type GAT struct {
	Version GATVersion
	Width   uint32
	Height  uint32
	Cells   []GATCell
}

// GetCell returns the cell at the given coordinates.
// Returns nil if coordinates are out of bounds.
func (g *GAT) GetCell(x, y int) *GATCell {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Cells[y*int(g.Width)+x]
}

// ParseGAT parses a GAT file from raw bytes.
func ParseGAT(data []byte) (*GAT, error) {
	if len(data) < 14 {
		return nil, ErrTruncatedGATData
	}

	// Check magic "GRAT"
	if string(data[0:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Version is stored as [minor, major]
	version := GATVersion{
		Major: data[5],
		Minor: data[4],
	}

	// Supported versions: 1.2, 1.3, 2.x, 3.x (cell format is identical)
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	r := bytes.NewReader(data[6:])

	// Read dimensions
	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedGATData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedGATData)
	}

	// Validate dimensions (maps can be up to ~512x512 cells typically, but allow larger)
	if width == 0 || height == 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("invalid GAT dimensions: %dx%d", width, height)
	}

	cellCount := int(width * height)
	gat := &GAT{
		Version: version,
		Width:   width,
		Height:  height,
		Cells:   make([]GATCell, cellCount),
	}

	// Read cells
	for i := 0; i < cellCount; i++ {
		cell, err := parseGATCell(r)
		if err != nil {
			return nil, fmt.Errorf("parsing cell %d: %w", i, err)
		}
		gat.Cells[i] = cell
	}

	return gat, nil
}

// parseGATCell parses a single GAT cell.
// Cell format is identical for all supported versions (1.x and 2.x).
func parseGATCell(r *bytes.Reader) (GATCell, error) {
	var cell GATCell

	// Read 4 corner heights
	for i := 0; i < 4; i++ {
		if err := binary.Read(r, binary.LittleEndian, &cell.Heights[i]); err != nil {
			return GATCell{}, fmt.Errorf("%w: reading height %d", ErrTruncatedGATData, i)
		}
	}

	// Read cell type
	if err := binary.Read(r, binary.LittleEndian, &cell.Type); err != nil {
		return GATCell{}, fmt.Errorf("%w: reading cell type", ErrTruncatedGATData)
	}

	return cell, nil
}

// ParseGATFile parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// GATSummary describes the cells of a GAT.
type GATSummary struct {
	Cells       int
	Water       int
	Walkable    int
	MinAltitude float32
	MaxAltitude float32
}

// Summary counts water and walkable cells and finds the altitude range
// over every corner.
func (g *GAT) Summary() GATSummary {
	s := GATSummary{Cells: len(g.Cells)}
	if len(g.Cells) == 0 {
		return s
	}

	s.MinAltitude = g.Cells[0].Heights[0]
	s.MaxAltitude = s.MinAltitude
	for i := range g.Cells {
		cell := &g.Cells[i]
		if cell.Type.IsWater() {
			s.Water++
		}
		if cell.Type.IsWalkable() {
			s.Walkable++
		}
		for _, h := range cell.Heights {
			s.MinAltitude = min(s.MinAltitude, h)
			s.MaxAltitude = max(s.MaxAltitude, h)
		}
	}
	return s
}

// Encode serialises the GAT.
func (g *GAT) Encode() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 14+len(g.Cells)*20))
	buf.WriteString(gatMagic)
	buf.WriteByte(g.Version.Minor)
	buf.WriteByte(g.Version.Major)
	binary.Write(buf, binary.LittleEndian, g.Width)
	binary.Write(buf, binary.LittleEndian, g.Height)
	for i := range g.Cells {
		binary.Write(buf, binary.LittleEndian, g.Cells[i].Heights)
		binary.Write(buf, binary.LittleEndian, g.Cells[i].Type)
	}
	return buf.Bytes()
}

// WriteGATFile encodes g to path.
func WriteGATFile(path string, g *GAT) error {
	if err := os.WriteFile(path, g.Encode(), 0644); err != nil {
		return fmt.Errorf("writing GAT file: %w", err)
	}
	return nil
}

// GATFromHeights builds a GAT from a row-major resolution x resolution
// height grid. Each GAT cell spans four neighbouring grid points, so the
// GAT is (resolution-1) cells wide. Altitudes are -height*altitudeScale,
// since GAT altitude grows downwards. Cells whose average height is below
// waterLevel are typed GATWater.
func GATFromHeights(resolution int, heights []float32, altitudeScale, waterLevel float32) (*GAT, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w: resolution %d", ErrGATTooSmall, resolution)
	}
	if len(heights) != resolution*resolution {
		return nil, fmt.Errorf("height grid has %d values, want %d", len(heights), resolution*resolution)
	}
	if altitudeScale == 0 {
		return nil, ErrZeroAltitudeScale
	}

	cells := resolution - 1
	g := &GAT{
		Version: GATVersionDefault,
		Width:   uint32(cells),
		Height:  uint32(cells),
		Cells:   make([]GATCell, cells*cells),
	}

	at := func(x, y int) float32 { return heights[y*resolution+x] }
	for cy := 0; cy < cells; cy++ {
		for cx := 0; cx < cells; cx++ {
			corners := [4]float32{
				at(cx, cy),
				at(cx+1, cy),
				at(cx, cy+1),
				at(cx+1, cy+1),
			}
			cell := &g.Cells[cy*cells+cx]
			for i, h := range corners {
				cell.Heights[i] = -h * altitudeScale
			}
			if cell.Height(altitudeScale) < waterLevel {
				cell.Type = GATWater
			}
		}
	}
	return g, nil
}

// Heights rebuilds the row-major height grid a GAT was exported from.
// The grid has one more point per side than the GAT has cells; each point
// is read from the cell it is the bottom-left corner of, or from its
// left/lower neighbour on the far edges.
func (g *GAT) Heights(altitudeScale float32) (resolution int, heights []float32, err error) {
	if g.Width != g.Height {
		return 0, nil, fmt.Errorf("%w: %dx%d", ErrGATNotSquare, g.Width, g.Height)
	}
	if altitudeScale == 0 {
		return 0, nil, ErrZeroAltitudeScale
	}

	cells := int(g.Width)
	if cells < 1 {
		return 0, nil, fmt.Errorf("%w: empty GAT", ErrGATTooSmall)
	}
	resolution = cells + 1
	heights = make([]float32, resolution*resolution)
	for y := 0; y < resolution; y++ {
		cy := min(y, cells-1)
		for x := 0; x < resolution; x++ {
			cx := min(x, cells-1)
			corner := (x - cx) + 2*(y-cy)
			heights[y*resolution+x] = -g.GetCell(cx, cy).Heights[corner] / altitudeScale
		}
	}
	return resolution, heights, nil
}
