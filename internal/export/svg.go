// Package export renders stored runs to SVG for reports.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/multisim/internal/store"
)

var strokeColors = []string{"#00ff00", "#00bfff", "#ff9500", "#ff4d88", "#c792ea"}

// TracesToSVG overlays every backend's membrane trace in one plot, one
// stroke color per backend, with a shared y-range so engines can be
// compared visually.
func TracesToSVG(traces map[string]store.Trace, order []string, width, height int) string {
	minV, maxV := bounds(traces, order)
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for idx, name := range order {
		trace, ok := traces[name]
		if !ok || len(trace.Voltages) < 2 {
			continue
		}
		color := strokeColors[idx%len(strokeColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))

		n := len(trace.Voltages)
		for i, v := range trace.Voltages {
			x := float64(i) / float64(n-1) * float64(width)
			y := float64(height) - (v-minV)/rangeV*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		// legend
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+idx*16, color, name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(traces map[string]store.Trace, order []string) (minV, maxV float64) {
	first := true
	for _, name := range order {
		for _, v := range traces[name].Voltages {
			if first {
				minV, maxV = v, v
				first = false
				continue
			}
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	return minV, maxV
}
