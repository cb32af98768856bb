package testing

// Pointer deltas here are in screen space: positive dx moves the pointer
// toward larger x, which scrolls the wheel toward larger offsets.

// Press starts a gesture.
func (t *WheelTester) Press() {
	t.wheel.Down()
}

// Move drags the pressed pointer by dx in the given number of samples.
func (t *WheelTester) Move(dx float64, samples int) {
	if samples < 1 {
		samples = 1
	}
	step := dx / float64(samples)
	for i := 0; i < samples; i++ {
		// Recognizers report distance since the last sample, positive
		// toward smaller x.
		t.wheel.Drag(-step, 0)
	}
}

// Release lifts the pointer without a fling.
func (t *WheelTester) Release() {
	t.wheel.Up()
}

// Drag simulates a press, a drag by dx in samples steps and a release.
func (t *WheelTester) Drag(dx float64, samples int) {
	t.Press()
	t.Move(dx, samples)
	t.Release()
}

// Fling simulates a drag by dx followed by a release at velocity vx px/s.
func (t *WheelTester) Fling(dx float64, samples int, vx float64) {
	t.Press()
	t.Move(dx, samples)
	t.wheel.Fling(vx, 0)
	t.Release()
}
