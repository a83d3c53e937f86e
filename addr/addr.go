// Package addr provides a uniform representation of binary image addresses.
package addr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Addr is a virtual address that may be specified in hexadecimal notation. It
// implements the flag.Value and encoding.TextUnmarshaler interfaces.
type Addr uint64

// String returns the hexadecimal string representation of a.
func (a Addr) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Set sets a to the numeric value represented by s.
func (a *Addr) Set(s string) error {
	x, err := parseUint64(s)
	if err != nil {
		return errors.WithStack(err)
	}
	*a = Addr(x)
	return nil
}

// UnmarshalText unmarshals the text into a.
func (a *Addr) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

// MarshalText returns the textual representation of a.
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Addrs implements the sort.Interface interface, sorting addresses in
// ascending order.
type Addrs []Addr

func (as Addrs) Len() int           { return len(as) }
func (as Addrs) Swap(i, j int)      { as[i], as[j] = as[j], as[i] }
func (as Addrs) Less(i, j int) bool { return as[i] < as[j] }

// Sort sorts as in ascending order.
func (as Addrs) Sort() { sort.Sort(as) }

// SortUnique sorts as in ascending order and removes duplicate entries,
// returning the deduplicated slice.
func SortUnique(as []Addr) []Addr {
	sort.Sort(Addrs(as))
	out := as[:0]
	var prev Addr
	for i, a := range as {
		if i == 0 || a != prev {
			out = append(out, a)
		}
		prev = a
	}
	return out
}

// ### [ Helper functions ] ####################################################

// parseUint64 interprets the given string in base 10 or base 16 (if prefixed
// with `0x` or `0X`) and returns the corresponding value.
func parseUint64(s string) (uint64, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[len("0x"):]
		base = 16
	}
	x, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return x, nil
}
