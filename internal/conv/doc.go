// Package conv provides checked integer conversions for lengths and counts
// read from untrusted input (binary payloads, frame headers).
package conv
