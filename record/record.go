// Package record defines the keyed records that are sorted by the
// benchmark, together with their line-oriented text encoding and a
// synthetic dataset generator.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status is the payload code carried by a Record. It never takes part
// in ordering.
type Status uint8

const (
	Preserved  Status = 1
	Burned     Status = 2
	Deforested Status = 3
)

// Valid reports whether s is one of the three known status codes.
func (s Status) Valid() bool {
	return s >= Preserved && s <= Deforested
}

func (s Status) String() string {
	switch s {
	case Preserved:
		return "Preserved"
	case Burned:
		return "Burned"
	case Deforested:
		return "Deforested"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// A Record is a (key, status) pair. Records are ordered by Key only.
type Record struct {
	Key    uint64
	Status Status
}

// String returns the encoded form "<key>:<status code>".
func (r Record) String() string {
	return strconv.FormatUint(r.Key, 10) + ":" + strconv.Itoa(int(r.Status))
}

// Less reports whether r sorts before s.
func (r Record) Less(s Record) bool {
	return r.Key < s.Key
}

// ErrMalformed is returned for lines that do not encode a Record.
var ErrMalformed = errors.New("malformed record")

// ParseRecord decodes a single "<key>:<status code>" string.
func ParseRecord(s string) (Record, error) {
	key, code, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Record{}, fmt.Errorf("%w: %q: missing separator", ErrMalformed, s)
	}
	k, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q: key: %v", ErrMalformed, s, err)
	}
	c, err := strconv.ParseUint(code, 10, 8)
	if err != nil || !Status(c).Valid() {
		return Record{}, fmt.Errorf("%w: %q: status must be 1, 2 or 3", ErrMalformed, s)
	}
	return Record{Key: k, Status: Status(c)}, nil
}

// A Dataset is an ordered sequence of records that sort algorithms
// permute in place.
type Dataset []Record

// Clone returns an independent copy of d.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	c := make(Dataset, len(d))
	copy(c, d)
	return c
}

// Strings returns the encoded form of every record, in order.
func (d Dataset) Strings() []string {
	s := make([]string, len(d))
	for i, r := range d {
		s[i] = r.String()
	}
	return s
}

// StatusCounts returns how many records carry each status.
func (d Dataset) StatusCounts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, r := range d {
		counts[r.Status]++
	}
	return counts
}
