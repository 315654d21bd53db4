package util

// Stack implements a parameterized Last-In-First-Out (LIFO) data structure.
// A positive Limit bounds the depth; pushing beyond it discards the oldest element.
type Stack[T any] struct {
	Limit int
	items []T
}

// Push appends a new element to the top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
	if s.Limit > 0 && len(s.items) > s.Limit {
		s.items = s.items[len(s.items)-s.Limit:]
	}
}

// Pop removes and returns the topmost element; ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return
	}
	idx := len(s.items) - 1
	item = s.items[idx]
	s.items = s.items[:idx]
	return item, true
}

// Peek returns the topmost element without removing it; returns the zero value if the stack is empty.
func (s *Stack[T]) Peek() (item T) {
	if len(s.items) == 0 {
		return
	}
	return s.items[len(s.items)-1]
}

// Len returns the total number of elements currently stored in the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear removes all elements from the stack.
func (s *Stack[T]) Clear() {
	s.items = nil
}
