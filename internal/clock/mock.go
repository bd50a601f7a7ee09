package clock

// Mock is a manually-driven Clock for tests.
type Mock struct {
	Seconds   int
	IsRunning bool
}

// NewMock creates a mock clock at 0 seconds, running.
func NewMock() *Mock {
	return &Mock{IsRunning: true}
}

func (m *Mock) ElapsedSeconds() int { return m.Seconds }
func (m *Mock) Running() bool       { return m.IsRunning }

// Advance moves the mock clock forward.
func (m *Mock) Advance(seconds int) {
	m.Seconds += seconds
}
