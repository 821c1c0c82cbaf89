//go:build !linux

package mem

func LargePage(options LargePageOptions) Allocator {
	return Allocator{
		Name: "large page allocator",

		Allocate: func(size int) ([]byte, error) {
			return nil, ErrUnsupported
		},

		Release: func(b []byte) error {
			return nil
		},
	}
}

func LargePageSize(options LargePageOptions) (int, error) {
	return 0, ErrUnsupported
}

func AcquireLargePages(options LargePageOptions) error {
	return ErrUnsupported
}

func ReadHugePageInfo() (*HugePageInfo, error) {
	return nil, ErrUnsupported
}

func HugePagePool(pageSize int) (*Pool, error) {
	return nil, ErrUnsupported
}

func HugePagePools() ([]Pool, error) {
	return nil, ErrUnsupported
}

func TransparentHugePageMode() (string, error) {
	return "", ErrUnsupported
}

func TransparentHugePageSize() (int, error) {
	return 0, ErrUnsupported
}

func MemlockLimits() (soft, hard uint64, err error) {
	return 0, 0, ErrUnsupported
}
