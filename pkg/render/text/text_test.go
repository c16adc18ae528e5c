package text

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/nestview/pkg/model"
)

func TestWrapScenarioWidth140(t *testing.T) {
	face, err := NewFaceMeasurer()
	if err != nil {
		t.Fatalf("NewFaceMeasurer() error = %v", err)
	}
	defer face.Close()

	tests := []struct {
		name string
		m    Measurer
	}{
		{"estimate", EstimateMeasurer{}},
		{"face", face},
		{"nil", nil},
	}

	opts := BoxOptions{MinWidth: 100, MaxWidth: 140, MinHeight: 48, PaddingX: 10, PaddingY: 8}
	segs := []Segment{{Kind: KindTitle, Text: "Customer Onboarding Workflow Review", Style: Style{Size: 14, Weight: Bold}}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Layout(segs, tt.m, opts)
			if len(b.Lines) < 2 {
				t.Errorf("lines = %d, want >= 2", len(b.Lines))
			}
			if b.Width > opts.MaxWidth {
				t.Errorf("width = %v, exceeds max %v", b.Width, opts.MaxWidth)
			}
			if b.Height < opts.MinHeight {
				t.Errorf("height = %v, below min %v", b.Height, opts.MinHeight)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	m := EstimateMeasurer{} // 6 units per char at size 10

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "   ", 100, nil},
		{"fits", "a b c", 100, []string{"a b c"}},
		{"breaks", "alpha beta gamma", 60, []string{"alpha beta", "gamma"}},
		{"hard split", "Supercalifragilistic", 48, []string{"Supercal", "ifragili", "stic"}},
		{"split then continue", "ab Supercalifragilistic x", 48, []string{"ab", "Supercal", "ifragili", "stic x"}},
		{"narrower than a rune", "abc", 1, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, 10, Regular, m)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z]{1,20}`), 1, 12).Draw(t, "words")
		width := rapid.Float64Range(6, 200).Draw(t, "width")
		m := EstimateMeasurer{}

		lines := Wrap(strings.Join(words, " "), width, 10, Regular, m)
		for _, l := range lines {
			if l == "" {
				t.Fatal("empty line")
			}
			if w := m.Measure(l, 10, Regular); w > width && len([]rune(l)) > 1 {
				t.Fatalf("line %q width %v > %v", l, w, width)
			}
		}
		joined := strings.ReplaceAll(strings.Join(lines, ""), " ", "")
		if joined != strings.Join(words, "") {
			t.Fatalf("text lost: %q vs %q", joined, strings.Join(words, ""))
		}
	})
}

func TestLayoutClampsWidth(t *testing.T) {
	opts := BoxOptions{MinWidth: 120, MaxWidth: 260, MinHeight: 48, PaddingX: 10, PaddingY: 8}

	short := Layout([]Segment{{Text: "Hi", Style: Style{Size: 14}}}, nil, opts)
	if short.Width != 120 || short.Height != 48 {
		t.Errorf("short box = %vx%v, want 120x48", short.Width, short.Height)
	}

	long := Layout([]Segment{{Text: strings.Repeat("word ", 40), Style: Style{Size: 14}}}, nil, opts)
	if long.Width <= 120 || long.Width > 260 {
		t.Errorf("long width = %v, want in (120, 260]", long.Width)
	}
	if long.Height <= 48 {
		t.Errorf("long height = %v, want > 48", long.Height)
	}
	for i := 1; i < len(long.Lines); i++ {
		if long.Lines[i].Baseline <= long.Lines[i-1].Baseline {
			t.Fatalf("baselines not increasing at %d", i)
		}
	}
}

func TestEstimateMeasurerWideRunes(t *testing.T) {
	m := EstimateMeasurer{}
	if got, want := m.Measure("漢字", 10, Regular), 24.0; got != want {
		t.Errorf("Measure(wide) = %v, want %v", got, want)
	}
}

func TestNodeSegments(t *testing.T) {
	th := DefaultTheme(14)
	segs := NodeSegments("Billing", "2027", model.Metadata{"score": 4.5, "cost": "high", "other": 1}, th)

	var kinds []string
	for _, s := range segs {
		kinds = append(kinds, s.Kind)
	}
	if got, want := strings.Join(kinds, ","), "title,score,cost,horizon"; got != want {
		t.Errorf("kinds = %s, want %s", got, want)
	}
	if segs[0].Style.Weight != Bold {
		t.Error("title should be bold")
	}
	if segs[1].Text != "score: 4.5" {
		t.Errorf("score text = %q", segs[1].Text)
	}
}
