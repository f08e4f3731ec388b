package point

import "github.com/hupe1980/pointkit/value"

// PointStruct is a point to be written: an ID, its vectors and a payload.
type PointStruct struct {
	ID      ID            `json:"id"`
	Vectors *Vectors      `json:"vector,omitempty"`
	Payload *value.Struct `json:"payload,omitempty"`
}

// NewPointStruct creates a point. A nil payload is stored as an empty struct.
func NewPointStruct(id ID, vectors *Vectors, payload *value.Struct) *PointStruct {
	if payload == nil {
		payload = value.NewStruct()
	}
	return &PointStruct{
		ID:      id,
		Vectors: vectors,
		Payload: payload,
	}
}

// PointID implements Identified.
func (p *PointStruct) PointID() ID { return p.ID }

// RetrievedPoint is a point returned by a lookup.
type RetrievedPoint struct {
	ID       ID            `json:"id"`
	Payload  *value.Struct `json:"payload,omitempty"`
	Vectors  *Vectors      `json:"vector,omitempty"`
	ShardKey string        `json:"shard_key,omitempty"`
}

// Get returns the payload value for key, or Null if the key is not present.
func (p *RetrievedPoint) Get(key string) value.Value {
	return getOrNull(p.Payload, key)
}

// TryGet returns the payload value for key and whether it was present.
func (p *RetrievedPoint) TryGet(key string) (value.Value, bool) {
	return p.Payload.Get(key)
}

// Hash returns the hash of the point's ID.
func (p *RetrievedPoint) Hash() uint64 { return p.ID.Hash() }

// PointID implements Identified.
func (p *RetrievedPoint) PointID() ID { return p.ID }

// ScoredPoint is a point returned by a search together with its score.
type ScoredPoint struct {
	ID       ID            `json:"id"`
	Payload  *value.Struct `json:"payload,omitempty"`
	Score    float32       `json:"score"`
	Version  uint64        `json:"version"`
	Vectors  *Vectors      `json:"vector,omitempty"`
	ShardKey string        `json:"shard_key,omitempty"`
}

// Get returns the payload value for key, or Null if the key is not present.
func (p *ScoredPoint) Get(key string) value.Value {
	return getOrNull(p.Payload, key)
}

// TryGet returns the payload value for key and whether it was present.
func (p *ScoredPoint) TryGet(key string) (value.Value, bool) {
	return p.Payload.Get(key)
}

// Hash returns the hash of the point's ID.
func (p *ScoredPoint) Hash() uint64 { return p.ID.Hash() }

// PointID implements Identified.
func (p *ScoredPoint) PointID() ID { return p.ID }

func getOrNull(payload *value.Struct, key string) value.Value {
	if v, ok := payload.Get(key); ok {
		return v
	}
	return value.Null()
}
