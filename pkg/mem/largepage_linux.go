//go:build linux

package mem

import (
	"fmt"
	"math/bits"
	"os"
	"sync"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

func LargePage(options LargePageOptions) Allocator {
	switch options.Strategy {
	case StrategyHugetlbfs:
		return hugetlbfsAllocator(options)
	case StrategyTHP:
		return transparentAllocator(options)
	default:
		return hugetlbAllocator(options)
	}
}

// LargePageSize returns the allocation granularity of the selected
// strategy in bytes.
func LargePageSize(options LargePageOptions) (int, error) {
	size := 0

	switch {
	case options.Strategy == StrategyTHP:
		s, err := TransparentHugePageSize()
		if err != nil {
			return 0, err
		}

		size = s
	case options.PageSize != 0:
		size = options.PageSize
	default:
		info, err := ReadHugePageInfo()
		if err != nil {
			return 0, err
		}

		size = info.DefaultSize
	}

	if size <= 0 {
		return 0, fmt.Errorf("unusable huge page size %vB", size)
	}

	return size, nil
}

// AcquireLargePages verifies that the selected strategy can hand out
// huge pages at all and raises the locked memory limit as far as the
// hard limit allows. It has to succeed before the first trial runs.
func AcquireLargePages(options LargePageOptions) error {
	if options.PageSize != 0 && bits.OnesCount64(uint64(options.PageSize)) != 1 {
		return fmt.Errorf("huge page size %vB is not a power of two", options.PageSize)
	}

	switch options.Strategy {
	case StrategyTHP:
		mode, err := TransparentHugePageMode()
		if err != nil {
			return fmt.Errorf("could not read the transparent huge page mode: %w", err)
		}

		if mode == "never" {
			return ErrTransparentHugePagesDisabled
		}
	case StrategyHugetlb, StrategyHugetlbfs, "":
		total := 0
		if options.PageSize != 0 {
			pool, err := HugePagePool(options.PageSize)
			if err != nil {
				return fmt.Errorf("could not read the pool for %vB huge pages: %w", options.PageSize, err)
			}

			total = pool.Total
		} else {
			info, err := ReadHugePageInfo()
			if err != nil {
				return fmt.Errorf("could not read the huge page info: %w", err)
			}

			total = info.Total
		}

		if total == 0 {
			return ErrNoHugePages
		}

		if options.Strategy == StrategyHugetlbfs {
			var stat unix.Statfs_t
			if err := unix.Statfs(options.dir(), &stat); err != nil {
				return fmt.Errorf("could not stat %v: %w", options.dir(), err)
			}

			if uint32(stat.Type) != unix.HUGETLBFS_MAGIC {
				return fmt.Errorf("%v is not a hugetlbfs mount", options.dir())
			}
		}
	default:
		return fmt.Errorf("unknown large page strategy %v", options.Strategy)
	}

	raiseMemlockLimit()

	return nil
}

func raiseMemlockLimit() {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &limit); err != nil {
		return
	}

	if limit.Cur >= limit.Max {
		return
	}

	limit.Cur = limit.Max

	_ = unix.Setrlimit(unix.RLIMIT_MEMLOCK, &limit)
}

func hugetlbAllocator(options LargePageOptions) Allocator {
	granule, granuleErr := LargePageSize(options)

	// MAP_POPULATE makes a depleted pool fail the map call instead of
	// raising SIGBUS on first touch.
	flags := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_HUGETLB | unix.MAP_POPULATE
	if options.PageSize != 0 {
		flags |= bits.TrailingZeros64(uint64(options.PageSize)) << unix.MAP_HUGE_SHIFT
	}

	return Allocator{
		Name: "large page allocator",

		Allocate: func(size int) ([]byte, error) {
			if granuleErr != nil {
				return nil, fmt.Errorf("could not determine the huge page size: %w", granuleErr)
			}

			b, err := unix.Mmap(-1, 0, alignUp(size, granule), unix.PROT_READ|unix.PROT_WRITE, flags)
			if err != nil {
				return nil, fmt.Errorf("could not map huge pages: %w", err)
			}

			return b, nil
		},

		Release: func(b []byte) error {
			return unix.Munmap(b)
		},
	}
}

func hugetlbfsAllocator(options LargePageOptions) Allocator {
	granule, granuleErr := LargePageSize(options)

	return Allocator{
		Name: "large page allocator",

		Allocate: func(size int) ([]byte, error) {
			if granuleErr != nil {
				return nil, fmt.Errorf("could not determine the huge page size: %w", granuleErr)
			}

			f, err := os.CreateTemp(options.dir(), "latency-hugepages-*")
			if err != nil {
				return nil, fmt.Errorf("could not create a file on %v: %w", options.dir(), err)
			}
			defer f.Close()

			// The mapping keeps the huge pages alive, so the file can be
			// unlinked right away and the pages go back to the pool on
			// Unmap.
			if err := os.Remove(f.Name()); err != nil {
				return nil, err
			}

			size = alignUp(size, granule)

			if err := f.Truncate(int64(size)); err != nil {
				return nil, fmt.Errorf("could not size %v: %w", f.Name(), err)
			}

			b, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
			if err != nil {
				return nil, fmt.Errorf("could not map %v: %w", f.Name(), err)
			}

			return b, nil
		},

		Release: func(b []byte) error {
			m := mmap.MMap(b)

			return m.Unmap()
		},
	}
}

var (
	transparentLock     sync.Mutex
	transparentMappings = map[*byte][]byte{}
)

func transparentAllocator(options LargePageOptions) Allocator {
	granule, granuleErr := LargePageSize(options)

	return Allocator{
		Name: "large page allocator",

		Allocate: func(size int) ([]byte, error) {
			if granuleErr != nil {
				return nil, fmt.Errorf("could not determine the transparent huge page size: %w", granuleErr)
			}

			size = alignUp(size, granule)

			raw, err := unix.Mmap(-1, 0, size+granule, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
			if err != nil {
				return nil, fmt.Errorf("could not map memory: %w", err)
			}

			offset := (granule - int(uintptr(unsafe.Pointer(&raw[0]))%uintptr(granule))) % granule

			b := raw[offset : offset+size]

			// The kernel only promotes huge-page-aligned ranges that have
			// not been touched yet, so the advice has to come before the
			// first write.
			if err := unix.Madvise(b, unix.MADV_HUGEPAGE); err != nil {
				_ = unix.Munmap(raw)

				return nil, fmt.Errorf("could not enable transparent huge pages: %w", err)
			}

			transparentLock.Lock()
			transparentMappings[&b[0]] = raw
			transparentLock.Unlock()

			return b, nil
		},

		Release: func(b []byte) error {
			if len(b) == 0 {
				return nil
			}

			transparentLock.Lock()
			raw, ok := transparentMappings[&b[0]]
			delete(transparentMappings, &b[0])
			transparentLock.Unlock()

			if !ok {
				return fmt.Errorf("unknown mapping %p", &b[0])
			}

			return unix.Munmap(raw)
		},
	}
}
