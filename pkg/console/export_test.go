package console

// ResetDefault clears the process-wide sink between tests.
func ResetDefault() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global.Store(nil)
}

// CheckSnapshot compares got with the golden file at path.
var CheckSnapshot = checkSnapshot
