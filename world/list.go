package world

import "iter"

// List keeps resources in insertion order with O(1) membership lookup
type List[T comparable] struct {
	items []T
	index map[T]int
}

func newList[T comparable]() List[T] {
	return List[T]{index: make(map[T]int)}
}

func (l *List[T]) Count() int { return len(l.items) }

func (l *List[T]) Contains(item T) bool {
	_, ok := l.index[item]
	return ok
}

// At returns the item at insertion position i
func (l *List[T]) At(i int) T { return l.items[i] }

// IndexOf returns the insertion position of item or -1
func (l *List[T]) IndexOf(item T) int {
	if i, ok := l.index[item]; ok {
		return i
	}
	return -1
}

func (l *List[T]) add(item T) {
	l.index[item] = len(l.items)
	l.items = append(l.items, item)
}

func (l *List[T]) remove(item T) bool {
	i, ok := l.index[item]
	if !ok {
		return false
	}
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	delete(l.index, item)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j]] = j
	}
	return true
}

// takeAll empties the list returning the former content in insertion order
func (l *List[T]) takeAll() []T {
	items := l.items
	l.items = nil
	clear(l.index)
	return items
}

// All iterates first to last
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range l.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Backward iterates last to first
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(l.items) - 1; i >= 0; i-- {
			if !yield(l.items[i]) {
				return
			}
		}
	}
}
