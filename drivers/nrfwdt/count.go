package nrfwdt

import "wdtgroom/x/mathx"

// Count is the number of reload-request channels fixed at activation.
type Count uint8

const (
	One Count = iota + 1
	Two
	Three
	Four
)

// MaxCount is the largest handle set this driver hands out.
const MaxCount = Four

// CountOf validates n as a handle count.
func CountOf(n int) (Count, error) {
	if !mathx.Between(n, int(One), int(MaxCount)) {
		return 0, ErrInvalidCount
	}
	return Count(n), nil
}

func (c Count) Valid() bool { return mathx.Between(c, One, MaxCount) }

// Mask is the RREN value enabling channels 0..c-1.
func (c Count) Mask() uint8 { return uint8(1)<<c - 1 }

func (c Count) Int() int { return int(c) }
