// Package testing provides a deterministic harness for wheel tests.
//
// # Quick Start
//
// Create a tester, lay the wheel out, drive gestures and make assertions:
//
//	func TestMyWheel(t *testing.T) {
//	    tester := wheeltest.NewWheelTesterWithT(t, wheel.Options{})
//	    tester.Layout(300, 40)
//
//	    tester.Drag(-40, 4)
//	    if err := tester.PumpAndSettle(2 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if tester.Events().Count(wheel.EventFinished) != 1 {
//	        t.Error("expected one finished event")
//	    }
//	}
//
// # Animation Testing
//
// The tester owns a [FakeClock]. Each pump advances it by one 16ms frame:
//
//	tester.PumpFor(100 * time.Millisecond)
//
// # Snapshot Testing
//
// Capture the tick layout and compare it against a golden file:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/rest.snapshot.json")
//
// Update snapshots with:
//
//	WHEEL_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import wheeltest "github.com/go-drift/wheel/pkg/testing"
package testing
