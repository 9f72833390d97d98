// Package conv formats integers without fmt or strconv, for log lines on
// targets where those packages cost too much flash.
package conv

// Utoa writes n in base 10 at the end of buf and returns the used tail.
// 20 bytes fit any uint64; a shorter buf keeps the low digits.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 || i == 0 {
			return buf[i:]
		}
	}
}

// Itoa is Utoa with a leading '-' for negative n. 21 bytes fit any int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	digits := Utoa(buf[1:], uint64(-n))
	start := len(buf) - len(digits) - 1
	buf[start] = '-'
	return buf[start:]
}

func U(n uint64) string {
	var buf [20]byte
	return string(Utoa(buf[:], n))
}

func I(n int) string {
	var buf [21]byte
	return string(Itoa(buf[:], int64(n)))
}
