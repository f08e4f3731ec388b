package usage

import (
	"maps"
	"math"
	"math/bits"
)

// Aggregatable is implemented by every usage type. Aggregate must be
// commutative and associative and must not modify either operand.
type Aggregatable[T any] interface {
	Aggregate(other T) T
	Clone() T
}

// AggregateOpts merges two optional values with nil as the identity.
//
// Both present yields a.Aggregate(b); exactly one present yields a copy of it;
// neither present yields nil. The result never aliases an operand.
func AggregateOpts[T Aggregatable[T]](a, b *T) *T {
	var out T
	switch {
	case a != nil && b != nil:
		out = (*a).Aggregate(*b)
	case a != nil:
		out = (*a).Clone()
	case b != nil:
		out = (*b).Clone()
	default:
		return nil
	}
	return &out
}

// AggregateUsage merges two optional Usage values.
func AggregateUsage(a, b *Usage) *Usage { return AggregateOpts(a, b) }

// AggregateHardware merges two optional HardwareUsage values.
func AggregateHardware(a, b *HardwareUsage) *HardwareUsage { return AggregateOpts(a, b) }

// AggregateInference merges two optional InferenceUsage values.
func AggregateInference(a, b *InferenceUsage) *InferenceUsage { return AggregateOpts(a, b) }

// Usage is the resource usage reported for one or more operations.
type Usage struct {
	Hardware  *HardwareUsage  `json:"hardware,omitempty"`
	Inference *InferenceUsage `json:"inference,omitempty"`
}

// Aggregate merges u and other. Each part is merged independently.
func (u Usage) Aggregate(other Usage) Usage {
	return Usage{
		Hardware:  AggregateHardware(u.Hardware, other.Hardware),
		Inference: AggregateInference(u.Inference, other.Inference),
	}
}

// Clone returns a deep copy of u.
func (u Usage) Clone() Usage {
	return Usage{
		Hardware:  AggregateOpts(u.Hardware, nil),
		Inference: AggregateOpts(u.Inference, nil),
	}
}

// IsEmpty reports whether u carries neither hardware nor inference usage.
func (u *Usage) IsEmpty() bool {
	return u == nil || (u.Hardware == nil && u.Inference == nil)
}

// HardwareUsage counts CPU and IO work.
type HardwareUsage struct {
	CPU                 uint64 `json:"cpu"`
	PayloadIORead       uint64 `json:"payload_io_read"`
	PayloadIOWrite      uint64 `json:"payload_io_write"`
	PayloadIndexIORead  uint64 `json:"payload_index_io_read"`
	PayloadIndexIOWrite uint64 `json:"payload_index_io_write"`
	VectorIORead        uint64 `json:"vector_io_read"`
	VectorIOWrite       uint64 `json:"vector_io_write"`
}

// Aggregate adds the counters pairwise, saturating at math.MaxUint64.
func (h HardwareUsage) Aggregate(other HardwareUsage) HardwareUsage {
	return HardwareUsage{
		CPU:                 addSat(h.CPU, other.CPU),
		PayloadIORead:       addSat(h.PayloadIORead, other.PayloadIORead),
		PayloadIOWrite:      addSat(h.PayloadIOWrite, other.PayloadIOWrite),
		PayloadIndexIORead:  addSat(h.PayloadIndexIORead, other.PayloadIndexIORead),
		PayloadIndexIOWrite: addSat(h.PayloadIndexIOWrite, other.PayloadIndexIOWrite),
		VectorIORead:        addSat(h.VectorIORead, other.VectorIORead),
		VectorIOWrite:       addSat(h.VectorIOWrite, other.VectorIOWrite),
	}
}

// Clone returns a copy of h.
func (h HardwareUsage) Clone() HardwareUsage { return h }

// TotalIO returns the sum of all IO counters.
func (h HardwareUsage) TotalIO() uint64 {
	total := uint64(0)
	for _, n := range []uint64{
		h.PayloadIORead, h.PayloadIOWrite,
		h.PayloadIndexIORead, h.PayloadIndexIOWrite,
		h.VectorIORead, h.VectorIOWrite,
	} {
		total = addSat(total, n)
	}
	return total
}

// InferenceUsage holds token usage per model name.
type InferenceUsage struct {
	Models map[string]ModelUsage `json:"models"`
}

// Aggregate returns the union of both model sets. Models present in both
// have their usage summed. The result has a nil map only when both operands do.
func (i InferenceUsage) Aggregate(other InferenceUsage) InferenceUsage {
	if i.Models == nil && other.Models == nil {
		return InferenceUsage{}
	}
	models := make(map[string]ModelUsage, len(i.Models)+len(other.Models))
	maps.Copy(models, i.Models)
	for name, u := range other.Models {
		if existing, ok := models[name]; ok {
			models[name] = existing.Aggregate(u)
		} else {
			models[name] = u
		}
	}
	return InferenceUsage{Models: models}
}

// Clone returns a copy of i with its own model map. A nil map stays nil.
func (i InferenceUsage) Clone() InferenceUsage {
	return InferenceUsage{Models: maps.Clone(i.Models)}
}

// TotalTokens returns the tokens used across all models.
func (i InferenceUsage) TotalTokens() uint64 {
	total := uint64(0)
	for _, u := range i.Models {
		total = addSat(total, u.Tokens)
	}
	return total
}

// ModelUsage is the usage attributed to a single model.
type ModelUsage struct {
	Tokens uint64 `json:"tokens"`
}

// Aggregate sums the token counts, saturating at math.MaxUint64.
func (m ModelUsage) Aggregate(other ModelUsage) ModelUsage {
	return ModelUsage{Tokens: addSat(m.Tokens, other.Tokens)}
}

// Clone returns a copy of m.
func (m ModelUsage) Clone() ModelUsage { return m }

// Sum folds parts from left to right. Nil parts are skipped; the result is
// nil when every part is nil.
func Sum(parts ...*Usage) *Usage {
	var total *Usage
	for _, p := range parts {
		total = AggregateUsage(total, p)
	}
	return total
}

// addSat adds with saturation so that counters pin at the maximum instead of
// wrapping around.
func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
