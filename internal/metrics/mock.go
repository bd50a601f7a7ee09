package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	togglesProcessed       int
	substitutionsCompleted int
	substitutionsCancelled int
	validationRejections   int
	policyAlerts           int
	snapshotSyncs          int
	syncDurations          []float64
	notifSent              int
	notifFailed            int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		syncDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTogglesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.togglesProcessed++
}

func (m *Mock) IncSubstitutionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substitutionsCompleted++
}

func (m *Mock) IncSubstitutionsCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substitutionsCancelled++
}

func (m *Mock) IncValidationRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationRejections++
}

func (m *Mock) IncPolicyAlerts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policyAlerts++
}

func (m *Mock) IncSnapshotSyncs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotSyncs++
}

func (m *Mock) ObserveSyncDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncDurations = append(m.syncDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TogglesProcessed returns the number of times IncTogglesProcessed was called.
func (m *Mock) TogglesProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.togglesProcessed
}

// SubstitutionsCompleted returns the number of times IncSubstitutionsCompleted was called.
func (m *Mock) SubstitutionsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.substitutionsCompleted
}

// SubstitutionsCancelled returns the number of times IncSubstitutionsCancelled was called.
func (m *Mock) SubstitutionsCancelled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.substitutionsCancelled
}

// ValidationRejections returns the number of times IncValidationRejections was called.
func (m *Mock) ValidationRejections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validationRejections
}

// PolicyAlerts returns the number of times IncPolicyAlerts was called.
func (m *Mock) PolicyAlerts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.policyAlerts
}

// SnapshotSyncs returns the number of times IncSnapshotSyncs was called.
func (m *Mock) SnapshotSyncs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotSyncs
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
