package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Row heights of the panel layout.
const (
	titleHeight    = 25.0
	sectionHeight  = 25.0
	sliderHeight   = 34.0 // label line + track + margin
	checkboxHeight = 22.0
	buttonHeight   = 30.0
	textHeight     = 18.0
	margin         = 10.0
)

// Widget is anything the panel can lay out in its column.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

type rowKind int

const (
	rowSection rowKind = iota
	rowSlider
	rowCheckbox
	rowButton
	rowText
)

type row struct {
	kind   rowKind
	y      float64
	title  string
	text   func() string
	widget Widget
}

// Panel stacks sections, sliders, checkboxes, buttons and text lines in a
// single column. Positions are fixed when a row is added.
type Panel struct {
	X, Y  float64
	Width float64
	Title string

	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	rows []row
}

// NewPanel creates an empty panel whose top-left corner is (x, y).
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		X:            x,
		Y:            y,
		Width:        width,
		Title:        title,
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// Height is the height of the laid out content.
func (p *Panel) Height() float64 {
	return p.nextY() - p.Y + margin
}

func (p *Panel) nextY() float64 {
	y := p.Y + titleHeight
	for _, r := range p.rows {
		y += rowHeight(r.kind)
	}
	return y
}

func rowHeight(k rowKind) float64 {
	switch k {
	case rowSection:
		return sectionHeight
	case rowSlider:
		return sliderHeight
	case rowCheckbox:
		return checkboxHeight
	case rowButton:
		return buttonHeight
	default:
		return textHeight
	}
}

// AddSection adds a section header
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{kind: rowSection, y: p.nextY(), title: title})
}

// AddSlider adds a slider; its label and value are drawn above the track.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	y := p.nextY()
	s := NewSlider(p.X+margin, y+16, p.Width-2*margin, label, min, max, value)
	p.rows = append(p.rows, row{kind: rowSlider, y: y, widget: s, text: s.Text})
	return s
}

// AddCheckbox adds a checkbox widget to the panel
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	y := p.nextY()
	c := NewCheckbox(p.X+margin, y+2, label, value)
	p.rows = append(p.rows, row{kind: rowCheckbox, y: y, widget: c})
	return c
}

// AddButton adds a full width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	y := p.nextY()
	b := NewButton(p.X+margin, y+2, p.Width-2*margin, buttonHeight-6, label, onClick)
	p.rows = append(p.rows, row{kind: rowButton, y: y, widget: b})
	return b
}

// AddText adds a read-only line evaluated on every draw.
func (p *Panel) AddText(text func() string) {
	p.rows = append(p.rows, row{kind: rowText, y: p.nextY(), text: text})
}

// Update handles input for all widgets
func (p *Panel) Update() {
	for _, r := range p.rows {
		if r.widget != nil {
			r.widget.Update()
		}
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	h := p.Height()
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	for _, r := range p.rows {
		switch r.kind {
		case rowSection:
			vector.FillRect(screen, float32(p.X+5), float32(r.y), float32(p.Width-10), 20, p.SectionColor, true)
			ebitenutil.DebugPrintAt(screen, r.title, int(p.X+margin), int(r.y+3))
		case rowSlider, rowText:
			ebitenutil.DebugPrintAt(screen, r.text(), int(p.X+margin), int(r.y))
		}
		if r.widget != nil {
			r.widget.Draw(screen)
		}
	}
}

// Contains reports whether the point lies inside the panel.
func (p *Panel) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height()
}
