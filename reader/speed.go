package reader

// DefaultWPMSteps are the discrete reading-speed presets the UI cycles
// through.
var DefaultWPMSteps = []int{150, 200, 250, 300, 350, 400, 450, 500, 600}

// NextWPM returns the next faster preset, or the current value when
// already at the maximum.
func NextWPM(current int) int {
	for _, step := range DefaultWPMSteps {
		if step > current {
			return step
		}
	}
	return current
}

// PrevWPM returns the next slower preset, or the current value when
// already at the minimum.
func PrevWPM(current int) int {
	for i := len(DefaultWPMSteps) - 1; i >= 0; i-- {
		if DefaultWPMSteps[i] < current {
			return DefaultWPMSteps[i]
		}
	}
	return current
}
