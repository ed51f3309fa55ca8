// Package dedup detects and optionally resolves duplicate sequence or
// motif names, mirroring the seen-set pattern used for sharded name
// lookups elsewhere in the pack (see bed.Index, which is keyed the same
// way via a fast string hash).
package dedup

import (
	"fmt"
	"strconv"

	"github.com/blainsmith/seahash"
	"github.com/pkg/errors"
)

// maxReportedOffenders is the number of duplicates at which Abort stops
// and returns its error; the report lists at most this many names, and
// duplicates after the cap are not counted.
const maxReportedOffenders = 5

// MaxNameLen is the cap shared by motif and sequence names; a name that
// would exceed it even after a dedup suffix is an error rather than a
// silent truncation.
const MaxNameLen = 256

// Checker tracks which names have been seen so far, keyed by a 64-bit
// seahash digest with the literal name kept alongside it to resolve
// hash collisions.
type Checker struct {
	seen  map[uint64][]string
	dups  []string
	total int
}

// NewChecker returns an empty Checker.
func NewChecker() *Checker {
	return &Checker{seen: make(map[uint64][]string)}
}

func (c *Checker) has(name string) bool {
	h := seahash.Sum64([]byte(name))
	for _, n := range c.seen[h] {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Checker) record(name string) {
	h := seahash.Sum64([]byte(name))
	c.seen[h] = append(c.seen[h], name)
}

// Abort records name, or records it as a duplicate if it has already been
// observed. It returns nil until maxReportedOffenders duplicates have been
// recorded and then returns the report; call Flush after the last name to
// report any smaller number of duplicates. Use Resolve instead when
// -d/dedup is enabled.
func (c *Checker) Abort(name string) error {
	if c.has(name) {
		c.dups = append(c.dups, name)
		c.total++
		if len(c.dups) == maxReportedOffenders {
			return c.abortError()
		}
		return nil
	}
	c.record(name)
	return nil
}

// Flush returns the accumulated abort error, if any duplicates were
// recorded by Abort but the offender cap was never reached.
func (c *Checker) Flush() error {
	if c.total == 0 {
		return nil
	}
	return c.abortError()
}

func (c *Checker) abortError() error {
	msg := fmt.Sprintf("%d duplicate name(s) found, including:", c.total)
	for _, n := range c.dups {
		msg += fmt.Sprintf("\n  %q", n)
	}
	return errors.New(msg)
}

// Resolve returns a name guaranteed unique among every name seen so far
// by this Checker: the first occurrence of a name is returned unchanged,
// and subsequent occurrences get a "__N<i>" suffix, starting at i=1 and
// incrementing until the combination is unused. It is an error if no
// suffixed variant fits within MaxNameLen.
func (c *Checker) Resolve(name string) (string, error) {
	if !c.has(name) {
		c.record(name)
		return name, nil
	}
	for i := 1; ; i++ {
		suffix := "__N" + strconv.Itoa(i)
		candidate := name + suffix
		if len(candidate) > MaxNameLen {
			return "", errors.Errorf("name %q cannot be deduplicated within the %d-character limit", name, MaxNameLen)
		}
		if !c.has(candidate) {
			c.record(candidate)
			return candidate, nil
		}
	}
}
