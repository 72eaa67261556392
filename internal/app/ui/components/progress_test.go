package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func Test_NewProgress(t *testing.T) {
	p := NewProgress()

	assert.True(t, p.Settled())
	assert.Equal(t, 0.0, p.Fraction())
	assert.False(t, p.Update())
}

func Test_Progress_AnimatesToTarget(t *testing.T) {
	p := NewProgress()
	p.SetTarget(1, 2)

	assert.False(t, p.Settled())
	assert.True(t, p.Update())
	assert.Greater(t, p.Fraction(), 0.0)
	assert.Less(t, p.Fraction(), 0.5)

	for i := 0; i < 500 && p.Update(); i++ {
	}

	assert.True(t, p.Settled())
	assert.Equal(t, 0.5, p.Fraction())
}

func Test_Progress_SetTarget_Clamps(t *testing.T) {
	tests := []struct {
		name   string
		done   int
		total  int
		expect float64
	}{
		{name: "zero total", done: 3, total: 0, expect: 0},
		{name: "overflow", done: 5, total: 2, expect: 1},
		{name: "negative", done: -1, total: 2, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgress()
			p.SetTarget(tt.done, tt.total)

			for i := 0; i < 500 && p.Update(); i++ {
			}

			assert.Equal(t, tt.expect, p.Fraction())
		})
	}
}

func Test_Progress_Render(t *testing.T) {
	p := NewProgress()
	p.SetTarget(1, 1)

	for i := 0; i < 500 && p.Update(); i++ {
	}

	assert.Equal(t, 20, lipgloss.Width(p.Render(20)))
	assert.Equal(t, ProgressMinWidth, lipgloss.Width(p.Render(2)))
	assert.NotContains(t, p.Render(20), progressEmpty)
}

func Test_Progress_Finish(t *testing.T) {
	p := NewProgress()
	p.SetTarget(3, 4)
	p.Finish()

	assert.True(t, p.Settled())
	assert.Equal(t, 0.75, p.Fraction())
}
