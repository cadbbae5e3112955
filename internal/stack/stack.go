// Package stack implements the symbolic stack: a finite sequence of ground
// types, plus a distinguished Failed sentinel produced by divergent
// instructions (FAIL/FAILWITH). See spec §3, §4.5, and
// original_source/typechecker/src/types.rs's StackState<T>, which this
// package ports primitive-for-primitive.
package stack

import "tzcheck/internal/types"

// Stack is Live(items) or Failed. Index 0 of items is the top.
type Stack struct {
	failed bool
	items  []types.GType
}

// New returns a live stack with top at index 0 of seed (seed[0] is the top).
func New(seed ...types.GType) *Stack {
	items := make([]types.GType, len(seed))
	copy(items, seed)
	return &Stack{items: items}
}

// Failed returns a stack already in the failed state.
func Failed() *Stack { return &Stack{failed: true} }

func (s *Stack) IsFailed() bool { return s.failed }

// Fail turns s into Failed; all further mutators on it become no-ops.
func (s *Stack) Fail() {
	s.failed = true
	s.items = nil
}

// Len returns the number of live elements, or (0, false) if s is Failed —
// callers that only care about "can I proceed" should check IsFailed first.
func (s *Stack) Len() (int, bool) {
	if s.failed {
		return 0, false
	}
	return len(s.items), true
}

// EnsureAtLeast reports whether a live stack has at least n elements. A
// Failed stack always satisfies any requirement (spec §4.5: "Operations on
// Failed are silently skipped").
func (s *Stack) EnsureAtLeast(n int) bool {
	if s.failed {
		return true
	}
	return len(s.items) >= n
}

func (s *Stack) EnsureNonEmpty() bool { return s.EnsureAtLeast(1) }

// Peek returns the element at depth i (0 = top). ok is false if i is out of
// range on a live stack; on a Failed stack ok is false and the caller must
// treat that as "already handled, propagate Failed".
func (s *Stack) Peek(i int) (types.GType, bool) {
	if s.failed || i < 0 || i >= len(s.items) {
		return types.GType{}, false
	}
	return s.items[i], true
}

// Push prepends t as the new top. No-op on a Failed stack.
func (s *Stack) Push(t types.GType) {
	if s.failed {
		return
	}
	s.items = append([]types.GType{t}, s.items...)
}

// Pop removes and returns the top element. No-op (returns zero, false) on a
// Failed or empty stack.
func (s *Stack) Pop() (types.GType, bool) {
	if s.failed || len(s.items) == 0 {
		return types.GType{}, false
	}
	t := s.items[0]
	s.items = s.items[1:]
	return t, true
}

// Replace overwrites the element at depth i in place.
func (s *Stack) Replace(i int, t types.GType) {
	if s.failed || i < 0 || i >= len(s.items) {
		return
	}
	s.items[i] = t
}

// Move relocates the element at depth from to depth to, shifting the
// intervening elements (used by DIG/DUG).
func (s *Stack) Move(from, to int) {
	if s.failed || from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		return
	}
	t := s.items[from]
	rest := append(s.items[:from:from], s.items[from+1:]...)
	head := append([]types.GType{}, rest[:to]...)
	head = append(head, t)
	head = append(head, rest[to:]...)
	s.items = head
}

// Tail returns a live copy of everything below the top element (depth 1+).
// On a Failed stack it returns a Failed stack.
func (s *Stack) Tail() *Stack {
	if s.failed {
		return Failed()
	}
	if len(s.items) == 0 {
		return New()
	}
	return New(s.items[1:]...)
}

// TailFrom returns a live copy of everything at depth n and below.
func (s *Stack) TailFrom(n int) *Stack {
	if s.failed {
		return Failed()
	}
	if n >= len(s.items) {
		return New()
	}
	return New(s.items[n:]...)
}

// HeadTill returns a live copy of the top n elements (depth 0..n-1).
func (s *Stack) HeadTill(n int) *Stack {
	if s.failed {
		return Failed()
	}
	if n > len(s.items) {
		n = len(s.items)
	}
	return New(s.items[:n]...)
}

// AppendTail appends other's elements below s's current elements, in place.
func (s *Stack) AppendTail(other *Stack) {
	if s.failed || other.failed {
		return
	}
	s.items = append(s.items, other.items...)
}

// Clone makes an independent copy, used before speculative schema attempts
// and before type-checking branch bodies on separate clones of the tail.
func (s *Stack) Clone() *Stack {
	if s.failed {
		return Failed()
	}
	return New(s.items...)
}

// Assign overwrites s's contents with other's, used by the compound-
// instruction driver to commit a speculatively built replacement stack (a
// successful schema attempt, a DIP's reassembled head+tail, a branch
// reconciliation's winner) back into the caller's stack.
func (s *Stack) Assign(other *Stack) {
	s.failed = other.failed
	s.items = other.items
}

// Verdict is the result of reconciling two branch-outcome stacks (spec §4.7).
type Verdict int

const (
	Match Verdict = iota
	NoMatch
	LeftFailed
	RightFailed
	BothFailed
)

// Compare reconciles a and b, the stacks produced by two control-flow
// branches. Two live stacks match iff they are structurally equal
// elementwise.
func Compare(a, b *Stack) Verdict {
	switch {
	case a.failed && b.failed:
		return BothFailed
	case a.failed:
		return LeftFailed
	case b.failed:
		return RightFailed
	}
	if len(a.items) != len(b.items) {
		return NoMatch
	}
	for i := range a.items {
		if !types.Equal(a.items[i], b.items[i]) {
			return NoMatch
		}
	}
	return Match
}

// CompareSingleton reports whether s is a live, single-element stack equal
// to t (used by the contract driver's terminal-stack check and by lambda
// literal type-checking).
func (s *Stack) CompareSingleton(t types.GType) bool {
	if s.failed || len(s.items) != 1 {
		return false
	}
	return types.Equal(s.items[0], t)
}
