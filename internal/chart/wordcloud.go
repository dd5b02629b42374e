package chart

import (
	"image/color"
	"math"

	"github.com/mattn/go-runewidth"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Word cloud geometry, in pixels at 96 DPI.
const (
	WordCloudTitle = "Word Cloud of Paper Titles"

	cloudWidth  = 800
	cloudHeight = 400

	minFontSize = 10.0
	maxFontSize = 64.0

	// glyphAspect approximates the advance of one narrow glyph relative
	// to the font size.
	glyphAspect = 0.55

	spiralStep = 0.15
)

// Word cloud canvas size.
var (
	WordCloudWidth  = vg.Length(cloudWidth) * vg.Inch / 96
	WordCloudHeight = vg.Length(cloudHeight) * vg.Inch / 96
)

// cloudPalette colors words by rank.
var cloudPalette = []color.Color{
	color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.RGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.RGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff},
	color.RGBA{R: 0x44, G: 0x3a, B: 0x83, A: 0xff},
	color.RGBA{R: 0x28, G: 0xae, B: 0x80, A: 0xff},
}

// Placement is the position of one word in the cloud, in canvas pixels
// with the origin at the bottom left.
type Placement struct {
	Word     string
	X, Y     float64
	FontSize float64
	Width    float64
	Height   float64
}

type rect struct {
	minX, minY, maxX, maxY float64
}

func (r rect) overlaps(o rect) bool {
	return r.minX < o.maxX && o.minX < r.maxX && r.minY < o.maxY && o.minY < r.maxY
}

func (r rect) inside(w, h float64) bool {
	return r.minX >= 0 && r.minY >= 0 && r.maxX <= w && r.maxY <= h
}

// Layout places words on a width x height canvas along an Archimedean
// spiral from the center. Font size is linear in weight. Words that do
// not fit are left out. The layout is deterministic.
func Layout(cloud *model.WordCloud, width, height float64) []Placement {
	if cloud == nil || cloud.Len() == 0 {
		return nil
	}

	placed := make([]Placement, 0, cloud.Len())
	boxes := make([]rect, 0, cloud.Len())
	cx, cy := width/2, height/2
	maxRadius := math.Hypot(cx, cy)
	aspect := width / height

	for _, w := range cloud.Words {
		size := minFontSize + (maxFontSize-minFontSize)*w.Weight
		textW := float64(runewidth.StringWidth(w.Word)) * size * glyphAspect
		textH := size

		// Shrink words wider than the canvas instead of dropping them.
		if textW > width*0.9 {
			scale := width * 0.9 / textW
			size *= scale
			textW *= scale
			textH *= scale
		}

		for t := 0.0; ; t += spiralStep {
			r := t * 2
			if r > maxRadius {
				break
			}
			x := cx + r*math.Cos(t)*aspect/2
			y := cy + r*math.Sin(t)/2
			box := rect{minX: x - textW/2, minY: y - textH/2, maxX: x + textW/2, maxY: y + textH/2}
			if !box.inside(width, height) || collides(box, boxes) {
				continue
			}
			boxes = append(boxes, box)
			placed = append(placed, Placement{Word: w.Word, X: x, Y: y, FontSize: size, Width: textW, Height: textH})
			break
		}
	}
	return placed
}

func collides(box rect, boxes []rect) bool {
	for _, b := range boxes {
		if box.overlaps(b) {
			return true
		}
	}
	return false
}

// WordCloudImage draws the cloud on a white 800x400 canvas without axes.
// An empty cloud yields a canvas with a "No words" note.
func WordCloudImage(cloud *model.WordCloud) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = WordCloudTitle
	p.HideAxes()
	p.X.Min, p.X.Max = 0, cloudWidth
	p.Y.Min, p.Y.Max = 0, cloudHeight

	placements := Layout(cloud, cloudWidth, cloudHeight)
	if len(placements) == 0 {
		placements = []Placement{{Word: "No words", X: cloudWidth / 2, Y: cloudHeight / 2, FontSize: 24}}
	}

	xys := make(plotter.XYs, len(placements))
	words := make([]string, len(placements))
	for i, pl := range placements {
		xys[i] = plotter.XY{X: pl.X, Y: pl.Y}
		words[i] = pl.Word
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: words})
	if err != nil {
		return nil, err
	}

	// Canvas pixels are 0.75pt at 96 DPI; the title steals a little height.
	for i, pl := range placements {
		labels.TextStyle[i].Font.Size = vg.Points(pl.FontSize * 0.75)
		labels.TextStyle[i].Color = cloudPalette[i%len(cloudPalette)]
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	return p, nil
}
