package nexus

import "runtime"

// goroutineID identifies the calling goroutine by parsing the header line
// of its stack trace. runtime.Stack for a single goroutine always begins
// "goroutine N [state]:", so a 64-byte buffer is plenty.
//
// This is the portable technique; it costs on the order of a microsecond,
// which a ThreadNexus pays once per goroutine on the slot-map lookup.
// Goroutine IDs are unique for the life of the process and never reused
// while the goroutine runs, which is all the slot map requires.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the numeric ID from a "goroutine N [state]:" header.
// Returns 0 if the header does not look like one, which the runtime does
// not currently produce.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
