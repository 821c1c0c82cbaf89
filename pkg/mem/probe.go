package mem

// HugePageInfo mirrors the hugetlb lines of /proc/meminfo.
type HugePageInfo struct {
	DefaultSize int // bytes
	Total       int
	Free        int
}

// Pool is one of the per-size hugetlb pools under
// /sys/kernel/mm/hugepages.
type Pool struct {
	PageSize int // bytes
	Total    int
	Free     int
}
