// Package pointkit provides the data layer of a vector-database client:
// structured point payloads, point identifiers and per-request resource usage.
//
// The building blocks live in sub-packages:
//
//   - value: the payload value model (null, bool, integer, double, string,
//     list, struct) with ordered JSON, display and binary encodings.
//   - point: point identifiers (numeric or UUID) with a stable hash, and the
//     point records that carry payloads.
//   - usage: hardware and inference usage with a commutative, associative
//     aggregation that treats missing parts as the identity.
//   - codec: JSON and go-json codecs plus checksummed zstd/lz4 frames.
//
// This package ties them together with file loaders:
//
//	ctx := context.Background()
//	payload, _ := pointkit.LoadPayload(ctx, "payload.json")
//	fmt.Println(payload)
//
//	total, _ := pointkit.SumUsageFiles(ctx, []string{"a.json", "b.json.zst"},
//	    pointkit.WithWorkers(4),
//	    pointkit.WithLogger(pointkit.NewTextLogger(slog.LevelDebug)),
//	)
//
// Files ending in .zst or .lz4 are decompressed automatically, either as
// pointkit frames or as raw streams written by the zstd/lz4 tools.
//
// # Error Handling
//
// Decoding failures are reported as *DecodeError, which carries the file path
// and unwraps to the underlying cause:
//
//	var de *pointkit.DecodeError
//	if errors.As(err, &de) {
//	    log.Printf("bad document %s: %v", de.Path, errors.Unwrap(de))
//	}
//
// Frame corruption unwraps to codec.ErrCorruptFrame or codec.ErrChecksum.
package pointkit
