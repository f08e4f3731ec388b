package point

// Vectors holds either a single unnamed dense vector or a set of named ones.
type Vectors struct {
	Dense []float32            `json:"dense,omitempty"`
	Named map[string][]float32 `json:"named,omitempty"`
}

// NewVectors returns Vectors holding one unnamed dense vector.
func NewVectors(values ...float32) *Vectors {
	return &Vectors{Dense: values}
}

// NewNamedVectors returns Vectors holding the given named vectors.
func NewNamedVectors(named map[string][]float32) *Vectors {
	return &Vectors{Named: named}
}

// Get returns the vector called name. The empty name selects the unnamed
// vector.
func (v *Vectors) Get(name string) ([]float32, bool) {
	if v == nil {
		return nil, false
	}
	if name == "" {
		return v.Dense, v.Dense != nil
	}
	vec, ok := v.Named[name]
	return vec, ok
}
