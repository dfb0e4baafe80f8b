// Package packing is the per-trip packing checklist.
package packing
