// This file is part of Regmap.
//
// Regmap is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Regmap is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Regmap.  If not, see <https://www.gnu.org/licenses/>.

// Package bitrange implements the closed bit interval used to describe which
// bits of a register or field take part in a mapping.
package bitrange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/regmap/registermap/faults"
)

// Interval is a closed range of bit positions. Low is always less than or
// equal to High.
type Interval struct {
	Low  uint
	High uint
}

// New creates an Interval from two bit positions. The positions can be given
// in any order.
func New(a, b uint) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Low: a, High: b}
}

// Bit creates an Interval covering a single bit.
func Bit(b uint) Interval {
	return Interval{Low: b, High: b}
}

// Width returns the number of bits in the interval.
func (iv Interval) Width() uint {
	return iv.High - iv.Low + 1
}

// Overlaps returns true if the two intervals share at least one bit.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Low <= o.High && o.Low <= iv.High
}

// Contains returns true if bit b is in the interval.
func (iv Interval) Contains(b uint) bool {
	return b >= iv.Low && b <= iv.High
}

// Mask returns the interval as a bit mask. Intervals extending beyond bit 63
// are truncated.
func (iv Interval) Mask() uint64 {
	if iv.Low > 63 {
		return 0
	}
	var m uint64
	if iv.Width() >= 64 {
		m = ^uint64(0)
	} else {
		m = (uint64(1) << iv.Width()) - 1
	}
	return m << iv.Low
}

// String formats the interval in the conventional [high:low] form. A single
// bit interval is formatted as [bit].
func (iv Interval) String() string {
	if iv.Low == iv.High {
		return fmt.Sprintf("[%d]", iv.Low)
	}
	return fmt.Sprintf("[%d:%d]", iv.High, iv.Low)
}

// Parse is the inverse of String(). The enclosing brackets are optional.
func Parse(s string) (Interval, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "[")
	t = strings.TrimSuffix(t, "]")

	hi, lo, ok := strings.Cut(t, ":")
	if !ok {
		lo = hi
	}

	h, err := strconv.ParseUint(strings.TrimSpace(hi), 10, 32)
	if err != nil {
		return Interval{}, faults.Errorf(faults.Parse, faults.InvalidValue, "interval", s)
	}
	l, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 32)
	if err != nil {
		return Interval{}, faults.Errorf(faults.Parse, faults.InvalidValue, "interval", s)
	}

	return New(uint(l), uint(h)), nil
}

// Less orders intervals by their low bit and then their high bit.
func Less(a, b Interval) bool {
	if a.Low == b.Low {
		return a.High < b.High
	}
	return a.Low < b.Low
}
