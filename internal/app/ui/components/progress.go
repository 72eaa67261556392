package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

const (
	progressFull  = "█"
	progressEmpty = "░"

	// Spring physics parameters
	progressAngularFrequency = 6.0 // Spring stiffness (higher = faster response)
	progressDampingRatio     = 1.0 // Critically damped, never overshoots

	// progressSettleThreshold is the distance below which the bar snaps to its target
	progressSettleThreshold = 0.001
)

// Progress is a suite progress bar whose fill follows its target through a spring
type Progress struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
}

// NewProgress creates an empty progress bar
func NewProgress() *Progress {
	return &Progress{
		spring: harmonica.NewSpring(harmonica.FPS(UITicksPerSecond), progressAngularFrequency, progressDampingRatio),
	}
}

// SetTarget sets the completed fraction the bar animates towards
func (p *Progress) SetTarget(done, total int) {
	if total <= 0 {
		p.target = 0
		return
	}

	p.target = math.Min(1, math.Max(0, float64(done)/float64(total)))
}

// Update advances the animation by one tick and reports whether the bar is still moving
func (p *Progress) Update() bool {
	if p.Settled() {
		return false
	}

	p.position, p.velocity = p.spring.Update(p.position, p.velocity, p.target)

	if math.Abs(p.target-p.position) < progressSettleThreshold && math.Abs(p.velocity) < progressSettleThreshold {
		p.position = p.target
		p.velocity = 0
	}

	return true
}

// Finish jumps the bar to its target
func (p *Progress) Finish() {
	p.position = p.target
	p.velocity = 0
}

// Settled reports whether the bar has reached its target
func (p *Progress) Settled() bool {
	return p.position == p.target && p.velocity == 0
}

// Fraction returns the currently displayed fill
func (p *Progress) Fraction() float64 {
	return math.Min(1, math.Max(0, p.position))
}

// Render returns the bar at the given width
func (p *Progress) Render(width int) string {
	if width < ProgressMinWidth {
		width = ProgressMinWidth
	}

	filled := int(math.Round(p.Fraction() * float64(width)))

	return ProgressFilledStyle.Render(strings.Repeat(progressFull, filled)) +
		ProgressEmptyStyle.Render(strings.Repeat(progressEmpty, width-filled))
}
