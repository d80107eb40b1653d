package curvature

// Sentinel values a Field cell can hold in place of a real curvature
// reading, distinguishing each failure class named in spec.md §4.C
// (curv_type.h's Curve_res enum) from a genuine (always non-negative,
// since curvature is reported as |κ|) curvature magnitude.
const (
	// SentinelOff marks a pixel that is not part of the "on" mask at all
	// (never walked).
	SentinelOff = -1.0
	// SentinelWrongNeighborCount marks an on-pixel whose neighbour count
	// is not exactly 2, so no single curve tangent direction exists.
	SentinelWrongNeighborCount = -2.0
	// SentinelNotLongEnough marks a pixel whose forward/backward walk
	// could not collect a long enough symmetric window.
	SentinelNotLongEnough = -3.0
	// SentinelDegenerateSystem marks a pixel whose windowed cubic fit hit
	// a singular linear system.
	SentinelDegenerateSystem = -4.0
)

// Field is an H×W array of per-pixel curvature readings. Cell (i,j) holds
// either |κ| (>= 0) or one of the Sentinel* values above.
type Field struct {
	Height, Width int
	values        []float64
}

// NewField allocates an H×W field with every cell set to SentinelOff.
func NewField(height, width int) *Field {
	values := make([]float64, height*width)
	for k := range values {
		values[k] = SentinelOff
	}

	return &Field{Height: height, Width: width, values: values}
}

func (f *Field) inBounds(i, j int) bool {
	return i >= 0 && i < f.Height && j >= 0 && j < f.Width
}

func (f *Field) index(i, j int) int {
	return i*f.Width + j
}

// At returns the reading at (i, j). Out-of-bounds reads as SentinelOff.
func (f *Field) At(i, j int) float64 {
	if !f.inBounds(i, j) {
		return SentinelOff
	}

	return f.values[f.index(i, j)]
}

// set writes the reading at (i, j). Out-of-bounds writes are ignored.
func (f *Field) set(i, j int, v float64) {
	if !f.inBounds(i, j) {
		return
	}
	f.values[f.index(i, j)] = v
}

// Config bundles the per-side window bounds §4.C reserves for tuning.
type Config struct {
	// LineLen is the maximum number of samples walked on each side of
	// the centre pixel (original LINELEN).
	LineLen int
	// MinSide is the minimum number of samples required on each side
	// after symmetric trimming (original MIN_BUFFER_LENGTH).
	MinSide int
	// IterativeFit enables the knot-reparameterization refit pass on the
	// windowed cubic fit (original ITERATIVE_FIT).
	IterativeFit bool
}

// DefaultConfig returns the original library's defaults: LineLen=16,
// MinSide=8, IterativeFit=true.
func DefaultConfig() Config {
	return Config{LineLen: 16, MinSide: 8, IterativeFit: true}
}
