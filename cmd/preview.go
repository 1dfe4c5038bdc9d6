package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/spf13/cobra"
)

var (
	previewOut     string
	previewPhase   string
	previewSeconds float64
	previewCycle   int
)

// previewCmd renders a single key face to an SVG file.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render one key face to an SVG file",
	Long: `Preview renders the key face for a given phase and remaining time
and writes the SVG to a file, for inspecting themes without a host.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewOut, "out", "keyface.svg", "Output SVG file")
	previewCmd.Flags().StringVar(&previewPhase, "phase", string(domain.PhaseRunningWork), "Phase to render (idle_work, running_work, paused_work, idle_break, running_break, paused_break)")
	previewCmd.Flags().Float64Var(&previewSeconds, "seconds", -1, "Remaining seconds (default: the full phase duration)")
	previewCmd.Flags().IntVar(&previewCycle, "cycle", 0, "Zero-based cycle index")
}

func runPreview(cmd *cobra.Command, args []string) error {
	phase := domain.TimerPhase(previewPhase)
	switch phase {
	case domain.PhaseIdleWork, domain.PhaseRunningWork, domain.PhasePausedWork,
		domain.PhaseIdleBreak, domain.PhaseRunningBreak, domain.PhasePausedBreak:
	default:
		return fmt.Errorf("unknown phase %q", previewPhase)
	}

	settings := domain.ResolveSettings(appConfig.Defaults.RawSettings())
	inst := domain.NewTimerInstance(settings)
	inst.Phase = phase
	if previewCycle >= 0 && previewCycle < settings.CycleCount {
		inst.CycleIndex = previewCycle
	}

	secs := previewSeconds
	if secs < 0 {
		secs = float64(inst.TotalSecondsForPhase(settings))
	}
	inst.RemainingSeconds = int(secs)

	frame, _ := renderer.Render(inst, settings, secs, time.Now(), nil)
	if frame == nil {
		return fmt.Errorf("renderer produced no frame")
	}

	svg, err := decodeDataURI(frame.Image)
	if err != nil {
		return fmt.Errorf("failed to decode frame: %w", err)
	}

	if err := os.WriteFile(previewOut, svg, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", previewOut, err)
	}

	fmt.Printf("Wrote %s (%s, %.0fs remaining)\n", previewOut, domain.GetPhaseLabel(phase), secs)
	return nil
}

// decodeDataURI extracts the SVG bytes from a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("unexpected image encoding")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
}
