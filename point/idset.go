package point

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// IDSet is a set of point IDs.
//
// Numeric IDs live in a 64-bit Roaring Bitmap, UUID IDs in a map. The two
// variants never collide, so NewNumID(7) and NewUUIDID("7") are distinct
// members. The zero ID is never a member.
//
// The zero IDSet is an empty set ready to use. IDSet is not safe for
// concurrent mutation.
type IDSet struct {
	nums  *roaring64.Bitmap
	uuids map[string]struct{}
}

// NewIDSet creates a set containing ids.
func NewIDSet(ids ...ID) *IDSet {
	s := &IDSet{
		nums:  roaring64.New(),
		uuids: make(map[string]struct{}),
	}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *IDSet) Add(id ID) bool {
	switch id.kind {
	case IDKindNum:
		if s.nums == nil {
			s.nums = roaring64.New()
		}
		return s.nums.CheckedAdd(id.num)
	case IDKindUUID:
		if s.uuids == nil {
			s.uuids = make(map[string]struct{})
		}
		if _, ok := s.uuids[id.uuid]; ok {
			return false
		}
		s.uuids[id.uuid] = struct{}{}
		return true
	default:
		return false
	}
}

// Contains reports whether id is in the set.
func (s *IDSet) Contains(id ID) bool {
	switch id.kind {
	case IDKindNum:
		return s.nums != nil && s.nums.Contains(id.num)
	case IDKindUUID:
		_, ok := s.uuids[id.uuid]
		return ok
	default:
		return false
	}
}

// Len returns the number of IDs in the set.
func (s *IDSet) Len() int {
	if s.nums == nil {
		return len(s.uuids)
	}
	return int(s.nums.GetCardinality()) + len(s.uuids)
}

// All yields numeric IDs in ascending order, then UUID IDs sorted by text.
func (s *IDSet) All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if s.nums != nil {
			it := s.nums.Iterator()
			for it.HasNext() {
				if !yield(NewNumID(it.Next())) {
					return
				}
			}
		}
		keys := make([]string, 0, len(s.uuids))
		for k := range s.uuids {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !yield(NewUUIDID(k)) {
				return
			}
		}
	}
}

// Identified is implemented by records that carry a point ID.
type Identified interface {
	PointID() ID
}

// Dedup returns the records whose ID has not been seen before, keeping the
// first occurrence and the input order. Records with a zero ID are kept.
func Dedup[P Identified](records []P) []P {
	seen := NewIDSet()
	out := make([]P, 0, len(records))
	for _, r := range records {
		id := r.PointID()
		if id.IsZero() || seen.Add(id) {
			out = append(out, r)
		}
	}
	return out
}
