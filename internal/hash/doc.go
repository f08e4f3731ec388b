// Package hash provides the checksum used by compressed document frames.
//
// Frames are protected with CRC32-Castagnoli (CRC32C), which Go computes with
// hardware instructions on amd64 (SSE4.2) and arm64:
//
//	sum := hash.CRC32C(data)
package hash
