package render

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/keydoro/keydoro/internal/domain"
)

// decodeFrame extracts the SVG markup from a rendered data URI.
func decodeFrame(t *testing.T, image string) string {
	t.Helper()
	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(image, prefix) {
		t.Fatalf("image should be a base64 SVG data URI, got %.40q", image)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(image, prefix))
	if err != nil {
		t.Fatalf("failed to decode image payload: %v", err)
	}
	return string(raw)
}

func renderSVG(t *testing.T, inst *domain.TimerInstance, secs float64) string {
	t.Helper()
	r := New(DefaultTheme())
	frame, _ := r.Render(inst, testSettings, secs, testNow(), nil)
	if frame == nil {
		t.Fatal("expected a frame")
	}
	return decodeFrame(t, frame.Image)
}

func TestDrawSVG_Canvas(t *testing.T) {
	inst := domain.NewTimerInstance(testSettings)
	svg := renderSVG(t, inst, 1500)

	if !strings.Contains(svg, `viewBox="0 0 72 72"`) {
		t.Error("SVG should use the 72x72 canonical canvas")
	}
	if !strings.Contains(svg, `fill="#1A1D23"`) {
		t.Error("SVG should fill the themed background")
	}
	if !strings.Contains(svg, `<text`) {
		t.Error("SVG should contain the countdown numeral")
	}
	if !strings.Contains(svg, ">25</text>") {
		t.Errorf("idle work face should show the full 25 minutes, got:\n%s", svg)
	}
}

func TestDrawSVG_ProgressRing(t *testing.T) {
	t.Run("full ring draws a circle", func(t *testing.T) {
		inst := domain.NewTimerInstance(testSettings)
		svg := renderSVG(t, inst, 1500)
		if !strings.Contains(svg, `stroke="url(#ring)"`) {
			t.Error("full progress should draw the gradient ring")
		}
		if strings.Contains(svg, "<path") {
			t.Error("full progress should degenerate to a circle, not an arc path")
		}
	})

	t.Run("partial progress draws an arc", func(t *testing.T) {
		inst := domain.NewTimerInstance(testSettings)
		inst.Phase = domain.PhaseRunningWork
		svg := renderSVG(t, inst, 750)
		if !strings.Contains(svg, `<path d="M 36 6 A 30 30 0 0 1`) {
			t.Errorf("half progress should draw an arc from twelve o'clock, got:\n%s", svg)
		}
	})

	t.Run("large arc flag past half", func(t *testing.T) {
		inst := domain.NewTimerInstance(testSettings)
		inst.Phase = domain.PhaseRunningWork
		svg := renderSVG(t, inst, 1200)
		if !strings.Contains(svg, `A 30 30 0 1 1`) {
			t.Errorf("80%% progress should set the large-arc flag, got:\n%s", svg)
		}
	})

	t.Run("zero progress draws no ring", func(t *testing.T) {
		inst := domain.NewTimerInstance(testSettings)
		inst.Phase = domain.PhaseRunningWork
		svg := renderSVG(t, inst, 0)
		if strings.Contains(svg, "url(#ring)") && strings.Contains(svg, "<path") {
			t.Error("zero progress should not draw an arc")
		}
	})
}

func TestDrawSVG_FamilyGradient(t *testing.T) {
	work := domain.NewTimerInstance(testSettings)
	workSVG := renderSVG(t, work, 1500)
	if !strings.Contains(workSVG, `stop-color="#FF6B6B"`) {
		t.Error("work face should use the warm gradient")
	}

	brk := domain.NewTimerInstance(testSettings)
	brk.Phase = domain.PhaseIdleBreak
	brk.RemainingSeconds = 300
	brkSVG := renderSVG(t, brk, 300)
	if !strings.Contains(brkSVG, `stop-color="#4ECDC4"`) {
		t.Error("break face should use the cool gradient")
	}
}

func TestDrawSVG_CycleDots(t *testing.T) {
	inst := domain.NewTimerInstance(testSettings)
	inst.CycleIndex = 2
	svg := renderSVG(t, inst, 1500)

	// Four dots: two completed (break color), one current, one future.
	if got := strings.Count(svg, `cy="64"`); got != 4 {
		t.Errorf("dot count = %d, want 4", got)
	}
	if got := strings.Count(svg, `fill="#4ECDC4"/>`); got != 2 {
		t.Errorf("completed dots = %d, want 2", got)
	}
	if got := strings.Count(svg, `fill-opacity="0.25"`); got != 1 {
		t.Errorf("future dots = %d, want 1", got)
	}
}

func TestDrawSVG_Deterministic(t *testing.T) {
	inst := domain.NewTimerInstance(testSettings)
	a := renderSVG(t, inst, 1500)
	b := renderSVG(t, inst, 1500)
	if a != b {
		t.Error("identical state should produce byte-identical frames")
	}
}
