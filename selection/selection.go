package selection

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/colsaw/internal/conv"
)

// Selection is an ordered, duplicate-free set of row indices.
// It wraps a 32-bit Roaring bitmap.
//
// Add and AddRange mutate the receiver. And, Or, AndNot and Complement
// never do; they return a new Selection.
//
// The zero value is an empty selection ready to use.
type Selection struct {
	rb *roaring.Bitmap
}

var emptyBitmap = roaring.New()

// view returns the bitmap for reading without allocating one.
func (s *Selection) view() *roaring.Bitmap {
	if s.rb == nil {
		return emptyBitmap
	}
	return s.rb
}

// bits returns the bitmap for writing, allocating it on first use.
func (s *Selection) bits() *roaring.Bitmap {
	if s.rb == nil {
		s.rb = roaring.New()
	}
	return s.rb
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{rb: roaring.New()}
}

// Of returns a selection holding the given row indices.
func Of(rows ...int) *Selection {
	s := New()
	for _, r := range rows {
		s.Add(r)
	}
	return s
}

// FromRange returns a selection holding every row in [lo, hi).
func FromRange(lo, hi int) *Selection {
	s := New()
	s.AddRange(lo, hi)
	return s
}

// FromUint32s returns a selection of 32-bit row ids, as collected by bulk scans.
func FromUint32s(rows []uint32) *Selection {
	return &Selection{rb: roaring.BitmapOf(rows...)}
}

func wrap(rb *roaring.Bitmap) *Selection {
	if rb == nil {
		rb = roaring.New()
	}
	return &Selection{rb: rb}
}

// Add inserts row i.
func (s *Selection) Add(i int) {
	s.bits().Add(conv.Row(i))
}

// AddMany inserts a batch of 32-bit row ids.
func (s *Selection) AddMany(rows []uint32) {
	s.bits().AddMany(rows)
}

// AddRange inserts every row in [lo, hi). An empty or inverted range is a no-op.
func (s *Selection) AddRange(lo, hi int) {
	if hi <= lo {
		return
	}
	s.bits().AddRange(uint64(conv.Row(lo)), uint64(conv.Row(hi-1))+1)
}

// Remove deletes row i if present.
func (s *Selection) Remove(i int) {
	if i < 0 {
		return
	}
	s.bits().Remove(conv.Row(i))
}

// Contains reports whether row i is selected. Negative rows are never selected.
func (s *Selection) Contains(i int) bool {
	if i < 0 || uint64(i) > conv.MaxRows {
		return false
	}
	return s.view().Contains(uint32(i))
}

// Size returns the number of selected rows.
func (s *Selection) Size() int {
	return int(s.view().GetCardinality())
}

// IsEmpty reports whether no row is selected.
func (s *Selection) IsEmpty() bool {
	return s.view().IsEmpty()
}

// Min returns the smallest selected row.
func (s *Selection) Min() (int, bool) {
	if s.view().IsEmpty() {
		return 0, false
	}
	return int(s.view().Minimum()), true
}

// Max returns the largest selected row.
func (s *Selection) Max() (int, bool) {
	if s.view().IsEmpty() {
		return 0, false
	}
	return int(s.view().Maximum()), true
}

// ToOrderedIndices returns the selected rows in strictly increasing order.
func (s *Selection) ToOrderedIndices() []int {
	out := make([]int, 0, s.view().GetCardinality())
	it := s.view().Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// All iterates the selected rows in strictly increasing order.
// Cost is proportional to the number of selected rows.
func (s *Selection) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.view().Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (s *Selection) Clone() *Selection {
	return wrap(s.view().Clone())
}

// Equal reports whether both selections hold the same rows.
func (s *Selection) Equal(other *Selection) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.view().Equals(other.view())
}

// And returns the intersection of s and other.
func (s *Selection) And(other *Selection) *Selection {
	return wrap(roaring.And(s.view(), other.view()))
}

// Or returns the union of s and other.
func (s *Selection) Or(other *Selection) *Selection {
	return wrap(roaring.Or(s.view(), other.view()))
}

// AndNot returns the rows of s that are not in other.
func (s *Selection) AndNot(other *Selection) *Selection {
	return wrap(roaring.AndNot(s.view(), other.view()))
}

// Complement returns the rows of [0, universe) that are not in s.
func (s *Selection) Complement(universe int) *Selection {
	if universe <= 0 {
		return New()
	}
	return wrap(roaring.Flip(s.view(), 0, uint64(conv.Row(universe-1))+1))
}

// Union returns the union of all inputs.
func Union(sels ...*Selection) *Selection {
	return wrap(roaring.FastOr(bitmaps(sels)...))
}

// Intersection returns the intersection of all inputs. No input yields an empty selection.
func Intersection(sels ...*Selection) *Selection {
	if len(sels) == 0 {
		return New()
	}
	return wrap(roaring.FastAnd(bitmaps(sels)...))
}

func bitmaps(sels []*Selection) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(sels))
	for i, s := range sels {
		out[i] = s.view()
	}
	return out
}

// RunOptimize converts dense runs to run containers in place.
func (s *Selection) RunOptimize() {
	s.bits().RunOptimize()
}

// SizeInBytes returns the in-memory size of the bitmap.
func (s *Selection) SizeInBytes() uint64 {
	return s.view().GetSizeInBytes()
}

// WriteTo writes the portable Roaring serialization.
func (s *Selection) WriteTo(w io.Writer) (int64, error) {
	return s.view().WriteTo(w)
}

// ReadFrom replaces s with a selection read from the portable Roaring serialization.
func (s *Selection) ReadFrom(r io.Reader) (int64, error) {
	s.bits().Clear()
	return s.bits().ReadFrom(r)
}

// String renders up to 16 rows, for debugging.
func (s *Selection) String() string {
	const limit = 16

	var sb strings.Builder
	sb.WriteByte('{')
	n := 0
	for row := range s.All() {
		if n == limit {
			fmt.Fprintf(&sb, ", ... (%d total)", s.Size())
			break
		}
		if n > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", row)
		n++
	}
	sb.WriteByte('}')
	return sb.String()
}
