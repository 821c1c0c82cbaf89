//go:build !linux

package mem

func adviseNoHugePages(b []byte) {}
