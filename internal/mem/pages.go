// Package mem implements sparse paged storage, used to back the indexed
// arrays attached to each register frame.
package mem

import "fmt"

// DefaultPageSize provides a default for Pages.PageSize.
const DefaultPageSize = 64

// Pages implements a sparse array of T values split into pages allocated on
// first store. Indices in unallocated pages, or never stored within an
// allocated page, load as the zero value of T.
type Pages[T any] struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit, when non-zero, bounds every index; loads and stores past it fail.
	Limit uint

	bases []uint
	pages [][]T
}

// LimitError indicates that an index exceeded the array limit.
type LimitError struct {
	Index uint
	Op    string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("array limit exceeded by %v @%v", lim.Op, lim.Index)
}

// Len returns the number of allocated pages.
func (m *Pages[T]) Len() int { return len(m.pages) }

// Load returns the value stored at index i.
func (m *Pages[T]) Load(i uint) (val T, err error) {
	if err := m.checkLimit(i, "load"); err != nil {
		return val, err
	}
	if id := m.findPage(i); id < len(m.bases) {
		if j := int(i) - int(m.bases[id]); 0 <= j && j < len(m.pages[id]) {
			return m.pages[id][j], nil
		}
	}
	return val, nil
}

// Stor stores val at index i, allocating a page if necessary.
func (m *Pages[T]) Stor(i uint, val T) error {
	if err := m.checkLimit(i, "stor"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}
	base, page := m.allocPage(m.findPage(i), i)
	page[i-base] = val
	return nil
}

// Each calls fn with every allocated index and its value, in index order.
func (m *Pages[T]) Each(fn func(i uint, val T)) {
	for id, page := range m.pages {
		base := m.bases[id]
		for j, val := range page {
			fn(base+uint(j), val)
		}
	}
}

func (m *Pages[T]) checkLimit(i uint, op string) error {
	if m.Limit != 0 && i >= m.Limit {
		return LimitError{i, op}
	}
	return nil
}

// findPage returns the id of the last page whose base is <= i, or 0.
func (m *Pages[T]) findPage(i uint) int {
	lo, hi := 0, len(m.bases)
	for lo < hi {
		h := int(uint(lo+hi)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= i {
			lo = h
		} else {
			hi = h - 1
		}
	}
	return lo
}

// allocPage returns the page containing i, allocating it at or around id.
// New pages are aligned to PageSize but shrunk to fit any gap between their
// neighbors.
func (m *Pages[T]) allocPage(id int, i uint) (base uint, page []T) {
	if id < len(m.bases) {
		base = m.bases[id]
		if size := uint(len(m.pages[id])); base <= i && i < base+size {
			return base, m.pages[id]
		}
		if base <= i {
			id++ // i lies in the gap after page id
		}
	}

	base = i / m.PageSize * m.PageSize
	end := base + m.PageSize
	if id > 0 {
		if prevEnd := m.bases[id-1] + uint(len(m.pages[id-1])); base < prevEnd {
			base = prevEnd
		}
	}
	if id < len(m.bases) {
		if next := m.bases[id]; end > next {
			end = next
		}
	}
	page = make([]T, end-base)

	m.bases = append(m.bases, 0)
	m.pages = append(m.pages, nil)
	copy(m.bases[id+1:], m.bases[id:])
	copy(m.pages[id+1:], m.pages[id:])
	m.bases[id] = base
	m.pages[id] = page
	return base, page
}
