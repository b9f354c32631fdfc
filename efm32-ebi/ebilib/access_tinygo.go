//go:build tinygo

package ebilib

import (
	"runtime/volatile"
)

// External memory is accessed one byte at a time with volatile loads and
// stores so the compiler does not merge, reorder or elide bus cycles.

func loadBytes(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = volatile.LoadUint8(&src[i])
	}
	return n
}

func storeBytes(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		volatile.StoreUint8(&dst[i], src[i])
	}
	return n
}
