//go:build !tinygo

package ebilib

func loadBytes(dst, src []byte) int { return copy(dst, src) }

func storeBytes(dst, src []byte) int { return copy(dst, src) }
