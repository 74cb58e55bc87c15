package observer

import (
	"context"
	"sync"
	"testing"
	"time"
)

// ============================================================================
// Test Observer Implementation
// ============================================================================

// TestObserver is a test observer that records all events it receives.
type TestObserver struct {
	events []Event
	mu     sync.Mutex
}

func NewTestObserver() *TestObserver {
	return &TestObserver{events: []Event{}}
}

func (o *TestObserver) OnEvent(ctx context.Context, event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *TestObserver) GetEvents() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events
}

func (o *TestObserver) GetEventCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func (o *TestObserver) GetEventsByType(eventType EventType) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()

	filtered := []Event{}
	for _, e := range o.events {
		if e.Type == eventType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ============================================================================
// NoOpObserver Tests
// ============================================================================

func TestNoOpObserver(t *testing.T) {
	observer := &NoOpObserver{}
	ctx := context.Background()

	event := Event{
		Type:      EventConstructionStart,
		Status:    StatusStarted,
		Timestamp: time.Now(),
	}

	// Should not panic
	observer.OnEvent(ctx, event)
}

// ============================================================================
// ConsoleObserver Tests
// ============================================================================

func TestConsoleObserver(t *testing.T) {
	observer := NewConsoleObserver()

	if observer == nil {
		t.Fatal("NewConsoleObserver returned nil")
	}

	ctx := context.Background()
	event := Event{
		Type:      EventConstructionStart,
		Status:    StatusStarted,
		Timestamp: time.Now(),
		RunID:     "run-123",
	}

	// Should not panic
	observer.OnEvent(ctx, event)
}

func TestConsoleObserverWithCustomLogger(t *testing.T) {
	logger := NewDefaultLogger()
	observer := NewConsoleObserverWithLogger(logger)

	if observer == nil {
		t.Fatal("NewConsoleObserverWithLogger returned nil")
	}

	ctx := context.Background()

	events := []Event{
		{
			Type:      EventConstructionStart,
			Status:    StatusStarted,
			Timestamp: time.Now(),
			RunID:     "run-123",
		},
		{
			Type:      EventSTAStart,
			Status:    StatusStarted,
			Timestamp: time.Now(),
			RunID:     "run-123",
		},
		{
			Type:        EventCycleBroken,
			Status:      StatusCompleted,
			Timestamp:   time.Now(),
			TileID:      "p0",
			Kernel:      "conv2d",
			ElapsedTime: 100 * time.Microsecond,
		},
		{
			Type:      EventSTAEnd,
			Status:    StatusSuccess,
			Timestamp: time.Now(),
			RunID:     "run-123",
		},
	}

	// Should not panic
	for _, event := range events {
		observer.OnEvent(ctx, event)
	}
}

// ============================================================================
// NoOpLogger Tests
// ============================================================================

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}
	fields := map[string]interface{}{
		"key": "value",
	}

	// Should not panic
	logger.Debug("debug message", fields)
	logger.Info("info message", fields)
	logger.Warn("warn message", fields)
	logger.Error("error message", fields)
}

// ============================================================================
// DefaultLogger Tests
// ============================================================================

func TestDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()

	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}

	fields := map[string]interface{}{
		"run_id":  "run-123",
		"tile_id": "p0",
	}

	// Should not panic
	logger.Debug("debug message", fields)
	logger.Info("info message", fields)
	logger.Warn("warn message", fields)
	logger.Error("error message", fields)
}

// ============================================================================
// Observer Manager Tests
// ============================================================================

func TestNewManager(t *testing.T) {
	mgr := NewManager()

	if mgr == nil {
		t.Fatal("NewManager returned nil")
	}

	if mgr.Count() != 0 {
		t.Errorf("Expected 0 observers, got %d", mgr.Count())
	}

	if mgr.HasObservers() {
		t.Error("Expected HasObservers to return false")
	}
}

func TestManagerRegister(t *testing.T) {
	mgr := NewManager()
	obs1 := NewTestObserver()
	obs2 := NewTestObserver()

	mgr.Register(obs1)
	if mgr.Count() != 1 {
		t.Errorf("Expected 1 observer, got %d", mgr.Count())
	}

	mgr.Register(obs2)
	if mgr.Count() != 2 {
		t.Errorf("Expected 2 observers, got %d", mgr.Count())
	}

	if !mgr.HasObservers() {
		t.Error("Expected HasObservers to return true")
	}
}

func TestManagerRegisterNil(t *testing.T) {
	mgr := NewManager()
	mgr.Register(nil)

	if mgr.Count() != 0 {
		t.Errorf("Expected 0 observers after registering nil, got %d", mgr.Count())
	}
}

func TestManagerNotify(t *testing.T) {
	mgr := NewManager()
	obs1 := NewTestObserver()
	obs2 := NewTestObserver()

	mgr.Register(obs1)
	mgr.Register(obs2)

	ctx := context.Background()
	event := Event{
		Type:      EventConstructionStart,
		Status:    StatusStarted,
		Timestamp: time.Now(),
		RunID:     "run-123",
	}

	mgr.Notify(ctx, event)

	if obs1.GetEventCount() != 1 {
		t.Errorf("Observer 1 expected 1 event, got %d", obs1.GetEventCount())
	}

	if obs2.GetEventCount() != 1 {
		t.Errorf("Observer 2 expected 1 event, got %d", obs2.GetEventCount())
	}

	events1 := obs1.GetEvents()
	if events1[0].Type != EventConstructionStart {
		t.Errorf("Expected event type %s, got %s", EventConstructionStart, events1[0].Type)
	}
}

func TestManagerNotifyMultipleEvents(t *testing.T) {
	mgr := NewManager()
	obs := NewTestObserver()
	mgr.Register(obs)

	ctx := context.Background()

	events := []Event{
		{Type: EventConstructionStart, Status: StatusStarted, Timestamp: time.Now(), RunID: "run-1"},
		{Type: EventConstructionEnd, Status: StatusSuccess, Timestamp: time.Now(), RunID: "run-1"},
		{Type: EventSTAStart, Status: StatusStarted, Timestamp: time.Now(), RunID: "run-1"},
		{Type: EventSTAEnd, Status: StatusSuccess, Timestamp: time.Now(), RunID: "run-1"},
	}

	for _, event := range events {
		mgr.Notify(ctx, event)
	}

	if obs.GetEventCount() != 4 {
		t.Errorf("Expected 4 events, got %d", obs.GetEventCount())
	}

	staStarts := obs.GetEventsByType(EventSTAStart)
	if len(staStarts) != 1 {
		t.Errorf("Expected 1 sta start event, got %d", len(staStarts))
	}

	staEnds := obs.GetEventsByType(EventSTAEnd)
	if len(staEnds) != 1 {
		t.Errorf("Expected 1 sta end event, got %d", len(staEnds))
	}
}

func TestNewManagerWithObservers(t *testing.T) {
	obs1 := NewTestObserver()
	obs2 := NewTestObserver()

	mgr := NewManagerWithObservers(obs1, obs2)

	if mgr.Count() != 2 {
		t.Errorf("Expected 2 observers, got %d", mgr.Count())
	}

	ctx := context.Background()
	event := Event{
		Type:      EventConstructionStart,
		Status:    StatusStarted,
		Timestamp: time.Now(),
		RunID:     "run-123",
	}

	mgr.Notify(ctx, event)

	if obs1.GetEventCount() != 1 {
		t.Errorf("Observer 1 expected 1 event, got %d", obs1.GetEventCount())
	}

	if obs2.GetEventCount() != 1 {
		t.Errorf("Observer 2 expected 1 event, got %d", obs2.GetEventCount())
	}
}

// ============================================================================
// Event Tests
// ============================================================================

func TestEventStructure(t *testing.T) {
	now := time.Now()
	event := Event{
		Type:        EventCycleBroken,
		Status:      StatusCompleted,
		Timestamp:   now,
		RunID:       "run-123",
		TileID:      "p0",
		Kernel:      "conv2d",
		StartTime:   now.Add(-100 * time.Millisecond),
		ElapsedTime: 100 * time.Millisecond,
		Result:      42,
		Error:       nil,
		Metadata: map[string]interface{}{
			"custom": "data",
		},
	}

	if event.Type != EventCycleBroken {
		t.Errorf("Expected type %s, got %s", EventCycleBroken, event.Type)
	}

	if event.Status != StatusCompleted {
		t.Errorf("Expected status %s, got %s", StatusCompleted, event.Status)
	}

	if event.RunID != "run-123" {
		t.Errorf("Expected run ID 'run-123', got '%s'", event.RunID)
	}

	if event.TileID != "p0" {
		t.Errorf("Expected tile ID 'p0', got '%s'", event.TileID)
	}

	if event.Result != 42 {
		t.Errorf("Expected result 42, got %v", event.Result)
	}

	if event.Metadata["custom"] != "data" {
		t.Errorf("Expected metadata custom='data', got %v", event.Metadata["custom"])
	}
}

// ============================================================================
// Synchronous Notification / Panic Recovery Tests
// ============================================================================

func TestManagerNotifyIsSynchronous(t *testing.T) {
	mgr := NewManager()
	obs := NewTestObserver()
	mgr.Register(obs)

	ctx := context.Background()
	event := Event{Type: EventConstructionStart, Status: StatusStarted, Timestamp: time.Now()}

	mgr.Notify(ctx, event)

	// Notify has no goroutine fan-out, so the event must already be visible
	// the instant Notify returns, with no Wait() needed.
	if obs.GetEventCount() != 1 {
		t.Errorf("Expected 1 event immediately after Notify, got %d", obs.GetEventCount())
	}
}

func TestObserverPanicRecovery(t *testing.T) {
	mgr := NewManager()

	panicObserver := &PanicObserver{}
	normalObserver := NewTestObserver()

	mgr.Register(panicObserver)
	mgr.Register(normalObserver)

	ctx := context.Background()
	event := Event{Type: EventConstructionStart, Status: StatusStarted, Timestamp: time.Now()}

	// Should not panic even though one observer panics
	mgr.Notify(ctx, event)

	// Normal observer should still receive the event
	if normalObserver.GetEventCount() != 1 {
		t.Errorf("Expected 1 event in normal observer, got %d", normalObserver.GetEventCount())
	}
}

// PanicObserver always panics when OnEvent is called
type PanicObserver struct{}

func (o *PanicObserver) OnEvent(ctx context.Context, event Event) {
	panic("observer panic test")
}

func TestManagerNotifyMultipleObservers(t *testing.T) {
	mgr := NewManager()

	observers := make([]*TestObserver, 10)
	for i := 0; i < 10; i++ {
		observers[i] = NewTestObserver()
		mgr.Register(observers[i])
	}

	ctx := context.Background()
	event := Event{Type: EventConstructionStart, Status: StatusStarted, Timestamp: time.Now()}

	mgr.Notify(ctx, event)

	for i, obs := range observers {
		if obs.GetEventCount() != 1 {
			t.Errorf("Observer %d expected 1 event, got %d", i, obs.GetEventCount())
		}
	}
}
