package mem

import "errors"

var (
	ErrUnsupported                  = errors.New("large pages are not supported on this platform")
	ErrNoHugePages                  = errors.New("no huge pages are reserved; reserve some with `sysctl vm.nr_hugepages=<count>`")
	ErrTransparentHugePagesDisabled = errors.New("transparent huge pages are disabled; enable them with `echo madvise > /sys/kernel/mm/transparent_hugepage/enabled`")
)
