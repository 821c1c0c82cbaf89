package mem

// Allocator is a capability record, not an interface: the benchmark
// treats "get N bytes, possibly failing" and "give them back" as two
// opaque callables plus a name for diagnostics.
type Allocator struct {
	Name string

	Allocate func(size int) ([]byte, error)
	Release  func(b []byte) error
}

type HeapOptions struct {
	// DisableTransparentHugePages keeps khugepaged from promoting the
	// baseline's pages behind the benchmark's back.
	DisableTransparentHugePages bool
}

func Heap(options HeapOptions) Allocator {
	return Allocator{
		Name: "heap allocator",

		Allocate: func(size int) ([]byte, error) {
			b := make([]byte, size)

			if options.DisableTransparentHugePages {
				adviseNoHugePages(b)
			}

			return b, nil
		},

		Release: func(b []byte) error {
			return nil
		},
	}
}
