package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
)

// Canonical canvas geometry. Hosts scale the 72x72 face themselves.
const (
	canvasSize  = 72
	ringCenter  = 36.0
	ringRadius  = 30.0
	ringWidth   = 5.0
	numeralY    = 43.0
	numeralSize = 26
	dotRowY     = 64.0
	dotRadius   = 2.5
	dotSpacing  = 9.0
)

// drawSVG assembles the key face: background, progress ring sweeping
// clockwise from the top with rounded caps, the countdown numeral, and
// the cycle indicator row.
func (r *Renderer) drawSVG(v visual) string {
	gradStart, gradEnd := r.theme.WorkGradientStart, r.theme.WorkGradientEnd
	if v.phase.IsBreak() {
		gradStart, gradEnd = r.theme.BreakGradientStart, r.theme.BreakGradientEnd
	}

	var svg bytes.Buffer
	fmt.Fprintf(&svg, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		canvasSize, canvasSize, canvasSize, canvasSize)
	svg.WriteString("\n")

	svg.WriteString("  <defs>\n")
	fmt.Fprintf(&svg, `    <linearGradient id="ring" x1="0" y1="0" x2="1" y2="1">`)
	svg.WriteString("\n")
	fmt.Fprintf(&svg, `      <stop offset="0%%" stop-color="%s"/>`, gradStart)
	svg.WriteString("\n")
	fmt.Fprintf(&svg, `      <stop offset="100%%" stop-color="%s"/>`, gradEnd)
	svg.WriteString("\n")
	svg.WriteString("    </linearGradient>\n  </defs>\n")

	fmt.Fprintf(&svg, `  <rect width="%d" height="%d" rx="12" fill="%s"/>`, canvasSize, canvasSize, r.theme.Background)
	svg.WriteString("\n")

	// Everything that fades near completion sits in one group.
	fmt.Fprintf(&svg, `  <g opacity="%.2f">`, v.globalOpacity)
	svg.WriteString("\n")

	fmt.Fprintf(&svg, `    <circle cx="%.0f" cy="%.0f" r="%.0f" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="0.35"/>`,
		ringCenter, ringCenter, ringRadius, r.theme.Track, ringWidth)
	svg.WriteString("\n")

	drawProgressArc(&svg, v.progress, v.pulseOpacity)

	fmt.Fprintf(&svg, `    <text x="%.0f" y="%.0f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%d" font-weight="bold" fill="%s" fill-opacity="%.2f">%s</text>`,
		ringCenter, numeralY, numeralSize, r.theme.Text, v.contentOpacity*v.pulseOpacity, v.title)
	svg.WriteString("\n")
	svg.WriteString("  </g>\n")

	r.drawCycleDots(&svg, v, gradStart)

	svg.WriteString("</svg>\n")

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg.Bytes())
}

// drawProgressArc draws the remaining-time arc from twelve o'clock,
// clockwise, proportional to progress. A full ring degenerates as an arc
// path, so progress at (or within a step of) 1 falls back to a circle.
func drawProgressArc(svg *bytes.Buffer, progress, opacity float64) {
	if progress <= 0 {
		return
	}
	if progress >= 1-1.0/progressSteps {
		fmt.Fprintf(svg, `    <circle cx="%.0f" cy="%.0f" r="%.0f" fill="none" stroke="url(#ring)" stroke-width="%.1f" stroke-opacity="%.2f"/>`,
			ringCenter, ringCenter, ringRadius, ringWidth, opacity)
		svg.WriteString("\n")
		return
	}

	theta := progress * 2 * math.Pi
	endX := ringCenter + ringRadius*math.Sin(theta)
	endY := ringCenter - ringRadius*math.Cos(theta)
	largeArc := 0
	if theta > math.Pi {
		largeArc = 1
	}
	fmt.Fprintf(svg, `    <path d="M %.0f %.0f A %.0f %.0f 0 %d 1 %.2f %.2f" fill="none" stroke="url(#ring)" stroke-width="%.1f" stroke-linecap="round" stroke-opacity="%.2f"/>`,
		ringCenter, ringCenter-ringRadius, ringRadius, ringRadius, largeArc, endX, endY, ringWidth, opacity)
	svg.WriteString("\n")
}

// drawCycleDots renders one dot per configured cycle: completed cycles
// solid in the break color, the current cycle in the phase gradient
// color at the indicator opacity, future cycles low-opacity neutral.
func (r *Renderer) drawCycleDots(svg *bytes.Buffer, v visual, gradStart string) {
	rowWidth := float64(v.cycleCount-1) * dotSpacing
	startX := ringCenter - rowWidth/2

	for i := 0; i < v.cycleCount; i++ {
		x := startX + float64(i)*dotSpacing
		switch {
		case i < v.cycleIndex:
			fmt.Fprintf(svg, `  <circle cx="%.1f" cy="%.0f" r="%.1f" fill="%s"/>`,
				x, dotRowY, dotRadius, r.theme.BreakGradientStart)
		case i == v.cycleIndex:
			fmt.Fprintf(svg, `  <circle cx="%.1f" cy="%.0f" r="%.1f" fill="%s" fill-opacity="%.2f"/>`,
				x, dotRowY, dotRadius, gradStart, v.indicatorOpacity)
		default:
			fmt.Fprintf(svg, `  <circle cx="%.1f" cy="%.0f" r="%.1f" fill="%s" fill-opacity="0.25"/>`,
				x, dotRowY, dotRadius, r.theme.DotNeutral)
		}
		svg.WriteString("\n")
	}
}
