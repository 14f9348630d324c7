package app

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence hands out prefixed sequential IDs (CUST1, CUST2, ...).
type Sequence struct {
	prefix string
	n      int64
}

func NewSequence(prefix string) *Sequence { return &Sequence{prefix: prefix} }

func (s *Sequence) Next() string {
	s.n++
	return fmt.Sprintf("%s%d", s.prefix, s.n)
}

// Observe moves the sequence past an existing id so Next never reissues it.
func (s *Sequence) Observe(id string) {
	if !strings.HasPrefix(id, s.prefix) {
		return
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id, s.prefix), 10, 64)
	if err == nil && n > s.n {
		s.n = n
	}
}
