package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeTime is a controllable wall-clock source.
type fakeTime struct {
	t time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{t: time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestMatchClock(t *testing.T) {
	t.Run("starts stopped at zero", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		assert.False(t, m.Running())
		assert.Equal(t, 0, m.ElapsedSeconds())

		ft.advance(time.Minute)
		assert.Equal(t, 0, m.ElapsedSeconds())
	})

	t.Run("accrues while running", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(90 * time.Second)
		assert.Equal(t, 90, m.ElapsedSeconds())
		assert.True(t, m.Running())
	})

	t.Run("pause freezes elapsed time", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(100 * time.Second)
		m.Pause()
		ft.advance(time.Hour)
		assert.Equal(t, 100, m.ElapsedSeconds())
		assert.False(t, m.Running())
	})

	t.Run("resume continues from the pause point", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(100 * time.Second)
		m.Pause()
		ft.advance(10 * time.Minute)
		m.Start()
		ft.advance(50 * time.Second)
		assert.Equal(t, 150, m.ElapsedSeconds())
	})

	t.Run("double start and double pause are no-ops", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(30 * time.Second)
		m.Start()
		ft.advance(30 * time.Second)
		assert.Equal(t, 60, m.ElapsedSeconds())
		m.Pause()
		m.Pause()
		assert.Equal(t, 60, m.ElapsedSeconds())
	})

	t.Run("set elapsed while running re-anchors", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(500 * time.Second)
		m.SetElapsed(1500)
		ft.advance(20 * time.Second)
		assert.Equal(t, 1520, m.ElapsedSeconds())
		assert.True(t, m.Running())
	})

	t.Run("set elapsed clamps negatives", func(t *testing.T) {
		m := NewMatchAt(newFakeTime().now)
		m.SetElapsed(-5)
		assert.Equal(t, 0, m.ElapsedSeconds())
	})

	t.Run("reset returns to zero, stopped", func(t *testing.T) {
		ft := newFakeTime()
		m := NewMatchAt(ft.now)
		m.Start()
		ft.advance(time.Minute)
		m.Reset()
		assert.False(t, m.Running())
		assert.Equal(t, 0, m.ElapsedSeconds())
	})
}

func TestMockClock(t *testing.T) {
	m := NewMock()
	assert.True(t, m.Running())
	m.Advance(45)
	assert.Equal(t, 45, m.ElapsedSeconds())
}
