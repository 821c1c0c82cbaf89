package main

import (
	"fmt"
	"os"

	"github.com/pojntfx/hugepage-latency/pkg/mem"
)

func main() {
	fmt.Printf("default page size: %vB\n", os.Getpagesize())

	info, err := mem.ReadHugePageInfo()
	if err != nil {
		fmt.Println("huge pages: unavailable:", err)
	} else {
		fmt.Printf("default huge page size: %vB\n", info.DefaultSize)
		fmt.Printf("huge pages: %v total, %v free\n", info.Total, info.Free)
	}

	pools, err := mem.HugePagePools()
	if err == nil {
		for _, pool := range pools {
			fmt.Printf("pool %vkB: %v total, %v free\n", pool.PageSize/1024, pool.Total, pool.Free)
		}
	}

	mode, err := mem.TransparentHugePageMode()
	if err != nil {
		fmt.Println("transparent huge pages: unavailable:", err)
	} else {
		size, err := mem.TransparentHugePageSize()
		if err != nil {
			fmt.Printf("transparent huge pages: %v\n", mode)
		} else {
			fmt.Printf("transparent huge pages: %v (%vB)\n", mode, size)
		}
	}

	if soft, hard, err := mem.MemlockLimits(); err == nil {
		fmt.Printf("memlock limit: %v soft, %v hard\n", soft, hard)
	}
}
