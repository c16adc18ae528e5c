package fonts

import (
	"strings"
	"testing"

	"golang.org/x/image/font"
)

func TestNewFaceMeasures(t *testing.T) {
	face, err := NewFace(14, false)
	if err != nil {
		t.Fatalf("NewFace() error = %v", err)
	}
	defer face.Close()

	short := font.MeasureString(face, "ab").Ceil()
	long := font.MeasureString(face, "abcdef").Ceil()
	if short <= 0 || long <= short {
		t.Errorf("widths short=%d long=%d", short, long)
	}

	boldFace, err := NewFace(14, true)
	if err != nil {
		t.Fatalf("NewFace(bold) error = %v", err)
	}
	defer boldFace.Close()
	if font.MeasureString(boldFace, "abcdef").Ceil() < long {
		t.Error("bold text should not be narrower than regular")
	}
}

func TestBase64IsStable(t *testing.T) {
	a, b := RegularBase64(), RegularBase64()
	if a == "" || a != b {
		t.Error("RegularBase64() should be non-empty and cached")
	}
	if strings.HasPrefix(BoldBase64(), a[:16]) && BoldBase64() == a {
		t.Error("bold and regular encodings must differ")
	}
}
