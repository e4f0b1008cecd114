package common

// WipeByteArray zeroes the buffer in place. Used to shorten the lifetime of
// passwords read from the terminal. Safe on nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
