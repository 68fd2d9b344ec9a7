package carousel

// Wrap reduces i into [0, n). It returns 0 when n <= 0.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// Offset returns the unsigned ring offset of card i from focus, in [0, n).
// This is the value before it is folded into the symmetric range, and the
// one crossing suppression inspects.
func Offset(i, focus, n int) int {
	return Wrap(i-focus, n)
}

// Distance returns the shortest signed offset of card i from focus on a ring
// of n cards. The result lies in (-⌈n/2⌉, ⌊n/2⌋]: for even n the card exactly
// opposite the focus is reported as +n/2. Distance is 0 only for i == focus
// (mod n), and always 0 when n <= 0.
func Distance(i, focus, n int) int {
	off := Offset(i, focus, n)
	if 2*off > n {
		return off - n
	}
	return off
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
