//go:build linux

package mem

import "golang.org/x/sys/unix"

// adviseNoHugePages is best-effort: madvise rejects ranges that are not
// page-aligned, which small heap buffers may not be.
func adviseNoHugePages(b []byte) {
	if len(b) == 0 {
		return
	}

	_ = unix.Madvise(b, unix.MADV_NOHUGEPAGE)
}
