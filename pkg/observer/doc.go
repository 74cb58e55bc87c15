// Package observer implements the observer pattern for construction and STA
// phase monitoring. Observers can track graph-construction and STA execution
// lifecycle without coupling to pkg/construct or pkg/sta's implementation.
//
// # Observer Interface
//
//	type Observer interface {
//	    OnEvent(ctx context.Context, event Event)
//	}
//
// # Events
//
// ConstructionStart / ConstructionEnd bracket one pkg/construct.Construct
// call; STAStart / STAEnd bracket one pkg/sta.Run or pkg/sta.Analyze call.
// CycleBroken is available for reporting a removed cycle edge, but
// pkg/graph.Graph.FixCycles and pkg/construct do not emit it: cycle
// breaking is silent.
//
// # Basic Usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{Type: observer.EventSTAStart, Status: observer.StatusStarted})
//
// # Notification order
//
// Manager.Notify calls every registered observer synchronously, in
// registration order. The core is single-threaded, so there is no
// concurrent caller to protect and no goroutine fan-out to coordinate.
// An observer that panics is recovered so it cannot affect the others.
package observer
