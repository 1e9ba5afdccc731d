package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/afmlab/afmsim/internal/scan"
	"github.com/afmlab/afmsim/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func fitBounds(xSeries, ySeries [][]float64) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, s := range xSeries {
		for _, x := range s {
			b.minX = math.Min(b.minX, x)
			b.maxX = math.Max(b.maxX, x)
		}
	}
	for _, s := range ySeries {
		for _, y := range s {
			b.minY = math.Min(b.minY, y)
			b.maxY = math.Max(b.maxY, y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 || math.IsInf(rangeX, -1) {
		rangeX = 1
	}
	if rangeY == 0 || math.IsInf(rangeY, -1) {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

func (b bounds) pathData(xs, ys []float64, width, height int) string {
	var sb strings.Builder
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	for i := range xs {
		x := (xs[i] - b.minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-b.minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	return sb.String()
}

// PolylineSVG creates an SVG from one series
func PolylineSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	b := fitBounds([][]float64{xs}, [][]float64{ys})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))
	sb.WriteString(b.pathData(xs, ys, width, height))
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ScanSVG renders a complete scan scene: the surface outline filled,
// the tip at its build position, and the measured trace on top. All
// three share one coordinate frame so heights are comparable.
func ScanSVG(out *scan.Output, width, height int) string {
	if out == nil || len(out.Surface.X) < 2 {
		return ""
	}

	b := fitBounds(
		[][]float64{out.Surface.X, out.Tip.Xtip, out.Result.X},
		[][]float64{out.Surface.Y, out.Tip.Ytip, out.Result.Trace},
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<path fill="#14324f" stroke="#58a6ff" stroke-width="1.5" d="`)
	sb.WriteString(b.pathData(out.Surface.X, out.Surface.Y, width, height))
	sb.WriteString(" Z\"/>\n")

	if len(out.Tip.Xtip) >= 2 {
		sb.WriteString(`<path fill="none" stroke="#ff9f1c" stroke-width="1.5" d="`)
		sb.WriteString(b.pathData(out.Tip.Xtip, out.Tip.Ytip, width, height))
		sb.WriteString("\"/>\n")
	}

	if len(out.Result.X) >= 2 {
		sb.WriteString(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="`)
		sb.WriteString(b.pathData(out.Result.X, out.Result.Trace, width, height))
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
