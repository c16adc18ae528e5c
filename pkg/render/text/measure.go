package text

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"

	"github.com/matzehuels/nestview/pkg/fonts"
)

// CharWidthFactor is the average glyph advance as a fraction of font size.
const CharWidthFactor = 0.6

// Weight selects the regular or bold face.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// String returns the SVG font-weight value.
func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

// Measurer reports the advance width of s at the given size and weight, in
// diagram units.
type Measurer interface {
	Measure(s string, size float64, weight Weight) float64
}

// EstimateMeasurer approximates widths as cells × size × CharWidth. Wide
// (East Asian) runes count as two cells.
type EstimateMeasurer struct {
	CharWidth float64
}

// Measure implements [Measurer].
func (m EstimateMeasurer) Measure(s string, size float64, _ Weight) float64 {
	cw := m.CharWidth
	if cw <= 0 {
		cw = CharWidthFactor
	}
	return float64(runewidth.StringWidth(s)) * size * cw
}

type faceKey struct {
	size   float64
	weight Weight
}

// FaceMeasurer measures text with the embedded Go fonts. Faces are created
// lazily per size and weight. Safe for concurrent use.
type FaceMeasurer struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
	fall  EstimateMeasurer
}

// NewFaceMeasurer loads the embedded fonts, returning an error if they cannot
// be parsed.
func NewFaceMeasurer() (*FaceMeasurer, error) {
	// Probe once so callers learn about a broken font up front.
	f, err := fonts.NewFace(12, false)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{faces: map[faceKey]font.Face{{12, Regular}: f}}, nil
}

// Measure implements [Measurer]. If a face cannot be created for the size it
// falls back to the estimate.
func (m *FaceMeasurer) Measure(s string, size float64, weight Weight) float64 {
	if s == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{size, weight}
	face, ok := m.faces[key]
	if !ok {
		var err error
		face, err = fonts.NewFace(size, weight == Bold)
		if err != nil {
			return m.fall.Measure(s, size, weight)
		}
		m.faces[key] = face
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64
}

// Close releases all faces.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
	return nil
}

// DefaultMeasurer returns a [FaceMeasurer], or an [EstimateMeasurer] when the
// fonts are unavailable.
func DefaultMeasurer() Measurer {
	if m, err := NewFaceMeasurer(); err == nil {
		return m
	}
	return EstimateMeasurer{}
}

func orEstimate(m Measurer) Measurer {
	if m == nil {
		return EstimateMeasurer{}
	}
	return m
}
