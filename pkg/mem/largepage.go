package mem

type Strategy string

const (
	// StrategyHugetlb maps anonymous memory out of the reserved huge page
	// pool.
	StrategyHugetlb Strategy = "hugetlb"
	// StrategyHugetlbfs maps an unlinked file on a hugetlbfs mount.
	StrategyHugetlbfs Strategy = "hugetlbfs"
	// StrategyTHP takes huge pages from the transparent huge page
	// machinery on an aligned anonymous mapping.
	StrategyTHP Strategy = "thp"
)

type LargePageOptions struct {
	Strategy Strategy

	// PageSize selects an explicit huge page size in bytes; 0 uses the
	// kernel default.
	PageSize int

	// Dir is the hugetlbfs mount point used by StrategyHugetlbfs.
	Dir string
}

func (o LargePageOptions) dir() string {
	if o.Dir == "" {
		return "/dev/hugepages"
	}

	return o.Dir
}

func alignUp(size, granule int) int {
	if granule <= 0 {
		return size
	}

	return ((size + granule - 1) / granule) * granule
}
