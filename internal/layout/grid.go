package layout

// Default breakpoints and cell geometry
const (
	DefaultMediumBreakpoint float32 = 500
	DefaultWideBreakpoint   float32 = 750
	DefaultGutter           float32 = 10
	DefaultCoverAspect      float32 = 4.0 / 3.0
)

// Column counts per size class
const (
	NarrowColumns = 2
	MediumColumns = 3
	WideColumns   = 4
	ListColumns   = 1
)

// Breakpoints are the width thresholds between size classes
type Breakpoints struct {
	Medium float32
	Wide   float32
}

// DefaultBreakpoints returns the stock breakpoints
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Medium: DefaultMediumBreakpoint, Wide: DefaultWideBreakpoint}
}

// Valid reports whether both thresholds are positive and ordered
func (b Breakpoints) Valid() bool {
	return b.Medium > 0 && b.Wide > b.Medium
}

// Columns returns the column count for a container width
func (b Breakpoints) Columns(width float32) int {
	if !b.Valid() {
		b = DefaultBreakpoints()
	}
	switch {
	case width < b.Medium:
		return NarrowColumns
	case width < b.Wide:
		return MediumColumns
	default:
		return WideColumns
	}
}

// Slot is one cell of a placement. Filler slots are empty placeholders.
type Slot struct {
	Index  int
	Filler bool
}

// Placement is the computed grid for a listing
type Placement struct {
	Columns int
	Fillers int
	Slots   []Slot
}

// Rows returns the number of rows the placement occupies
func (p Placement) Rows() int {
	if p.Columns == 0 {
		return 0
	}
	return len(p.Slots) / p.Columns
}

// ItemCount returns the number of real (non-filler) slots
func (p Placement) ItemCount() int {
	return len(p.Slots) - p.Fillers
}

// Compute places itemCount items into a grid sized for width. Fillers pad the
// final row so that every row is full; an empty listing has no slots.
func Compute(itemCount int, width float32, bp Breakpoints) Placement {
	return place(itemCount, bp.Columns(width))
}

// ComputeList places items in a single-column list
func ComputeList(itemCount int) Placement {
	return place(itemCount, ListColumns)
}

func place(itemCount, columns int) Placement {
	if itemCount < 0 {
		itemCount = 0
	}
	fillers := (columns - itemCount%columns) % columns

	slots := make([]Slot, 0, itemCount+fillers)
	for i := 0; i < itemCount; i++ {
		slots = append(slots, Slot{Index: i})
	}
	for i := 0; i < fillers; i++ {
		slots = append(slots, Slot{Index: itemCount + i, Filler: true})
	}

	return Placement{
		Columns: columns,
		Fillers: fillers,
		Slots:   slots,
	}
}

// CellSize returns the width and height of a single cell. Width is the
// column share minus the gutter; height follows the cover aspect ratio.
func CellSize(width float32, columns int, gutter, aspect float32) (float32, float32) {
	if columns < 1 {
		columns = 1
	}
	if aspect <= 0 {
		aspect = DefaultCoverAspect
	}
	w := width/float32(columns) - gutter
	if w < 0 {
		w = 0
	}
	return w, w * aspect
}
