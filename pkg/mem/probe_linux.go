//go:build linux

package mem

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

func ReadHugePageInfo() (*HugePageInfo, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := &HugePageInfo{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		value, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		switch fields[0] {
		case "Hugepagesize:":
			info.DefaultSize = value * 1024
		case "HugePages_Total:":
			info.Total = value
		case "HugePages_Free:":
			info.Free = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if info.DefaultSize == 0 {
		return nil, fmt.Errorf("no huge page size in /proc/meminfo")
	}

	return info, nil
}

func HugePagePool(pageSize int) (*Pool, error) {
	dir := fmt.Sprintf("/sys/kernel/mm/hugepages/hugepages-%vkB", pageSize/1024)

	total, err := readInt(dir + "/nr_hugepages")
	if err != nil {
		return nil, err
	}

	free, err := readInt(dir + "/free_hugepages")
	if err != nil {
		return nil, err
	}

	return &Pool{PageSize: pageSize, Total: total, Free: free}, nil
}

func HugePagePools() ([]Pool, error) {
	entries, err := os.ReadDir("/sys/kernel/mm/hugepages")
	if err != nil {
		return nil, err
	}

	pools := []Pool{}
	for _, entry := range entries {
		kb, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(entry.Name(), "hugepages-"), "kB"))
		if err != nil {
			continue
		}

		pool, err := HugePagePool(kb * 1024)
		if err != nil {
			continue
		}

		pools = append(pools, *pool)
	}

	return pools, nil
}

func TransparentHugePageMode() (string, error) {
	modes, err := os.ReadFile("/sys/kernel/mm/transparent_hugepage/enabled")
	if err != nil {
		return "", err
	}

	// The active mode is the bracketed one, e.g. `always [madvise] never`.
	for _, mode := range strings.Fields(string(modes)) {
		if strings.HasPrefix(mode, "[") && strings.HasSuffix(mode, "]") {
			return strings.Trim(mode, "[]"), nil
		}
	}

	return "", fmt.Errorf("no active mode in %q", strings.TrimSpace(string(modes)))
}

func TransparentHugePageSize() (int, error) {
	return readInt("/sys/kernel/mm/transparent_hugepage/hpage_pmd_size")
}

func MemlockLimits() (soft, hard uint64, err error) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &limit); err != nil {
		return 0, 0, err
	}

	return limit.Cur, limit.Max, nil
}

func readInt(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("could not parse %v: %w", path, err)
	}

	return value, nil
}
