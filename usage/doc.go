// Package usage aggregates resource usage reported by independent operations.
//
// A Usage holds optional hardware counters and optional per-model inference
// token counts:
//
//	Usage
//	├── Hardware  *HardwareUsage   (cpu, payload/index/vector io)
//	└── Inference *InferenceUsage  (model name -> ModelUsage{Tokens})
//
// Aggregation forms a commutative monoid with nil as the identity at every
// optional level, so partial results may be merged in any order:
//
//	total := usage.Sum(a, b, c)
//	total, err := usage.Reduce(ctx, parts, usage.WithWorkers(4))
//
// Counters saturate at math.MaxUint64 rather than wrapping. Merges never
// modify their operands.
package usage
