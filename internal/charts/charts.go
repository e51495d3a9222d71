// Package charts renders the dashboard statistics as PNG bar charts on
// the server, replacing the chart widgets the original drew in-browser.
package charts

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Entry is one bar: a label and its value.
type Entry struct {
	Label string
	Value int
}

const (
	chartWidth  = 800
	rowHeight   = 56
	headerSpace = 72
	barLeft     = 240.0
	barMaxWidth = 480.0
)

// navy matches the platform's primary UI color.
var navy = [3]float64{0x06 / 255.0, 0x32 / 255.0, 0x67 / 255.0}

// Render draws a horizontal bar chart and returns it PNG-encoded. An
// empty entry list still yields a chart with just the title, so a page
// embedding the image never breaks on empty stats.
func Render(title string, entries []Entry) ([]byte, error) {
	height := headerSpace + rowHeight*len(entries) + 24
	dc := gg.NewContext(chartWidth, height)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	dc.SetRGB(navy[0], navy[1], navy[2])
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 28}))
	dc.DrawStringAnchored(title, chartWidth/2, headerSpace/2, 0.5, 0.5)

	maxValue := 0
	for _, e := range entries {
		if e.Value > maxValue {
			maxValue = e.Value
		}
	}

	labelFace := truetype.NewFace(font, &truetype.Options{Size: 18})
	for i, e := range entries {
		rowTop := float64(headerSpace + i*rowHeight)
		center := rowTop + rowHeight/2

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.SetFontFace(labelFace)
		dc.DrawStringAnchored(truncate(e.Label, 24), barLeft-16, center, 1, 0.5)

		width := 0.0
		if maxValue > 0 {
			width = barMaxWidth * float64(e.Value) / float64(maxValue)
		}
		dc.SetRGB(navy[0], navy[1], navy[2])
		dc.DrawRectangle(barLeft, rowTop+12, width, rowHeight-24)
		dc.Fill()

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%d", e.Value), barLeft+width+12, center, 0, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength-3]) + "..."
}
