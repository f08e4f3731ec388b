// Package point defines point identifiers and the point records that carry
// payloads.
//
// # Identity Types
//
//   - ID: either a 64-bit number or a UUID string
//   - IDSet: deduplicating ID set backed by a Roaring Bitmap for numeric IDs
//
// # Records
//
//   - PointStruct: ID, vectors and payload to be written
//   - RetrievedPoint: point returned by a lookup
//   - ScoredPoint: point returned by a search, with score and version
//
// Payload lookups never fail:
//
//	p.Get("missing").IsNull()    // true
//	_, ok := p.TryGet("missing") // ok == false
//
// # Hashing
//
// ID.WriteHash feeds a numeric ID as its 8 raw bytes and a UUID ID as its
// string bytes, so equal IDs always hash alike. Records hash by ID only.
package point
