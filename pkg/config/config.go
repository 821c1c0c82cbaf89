package config

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config collects every knob of the benchmark.
type Config struct {
	Size             int   `toml:"size"`
	SampleNum        int   `toml:"sample_num"`
	SamplePassNum    int   `toml:"sample_pass_num"`
	UseRandomOffsets bool  `toml:"use_random_offsets"`
	Seed             int64 `toml:"seed"`

	HugePageSize      int    `toml:"huge_page_size"`
	LargePageStrategy string `toml:"large_page_strategy"`
	HugetlbfsDir      string `toml:"hugetlbfs_dir"`
	DisableTHP        bool   `toml:"disable_thp"`

	Clock   string `toml:"clock"`
	JSONOut string `toml:"json_out"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the stock configuration: a 256 MiB strided walk,
// sampled 100 times with one pass each.
func Default() *Config {
	return &Config{
		Size:          256 * 1024 * 1024,
		SampleNum:     100,
		SamplePassNum: 1,
		Seed:          1,

		LargePageStrategy: "hugetlb",
		Clock:             "wall",
	}
}

// Load layers the configuration: first a TOML file named by --config
// (if any), then the remaining command line arguments on top. Argument
// parsing is best-effort: unknown arguments are silently ignored and
// malformed values keep the current one. Only an unreadable config
// file is an error.
func (c *Config) Load(args []string) error {
	for _, arg := range args {
		if path, ok := strings.CutPrefix(arg, "--config="); ok {
			if _, err := toml.DecodeFile(path, c); err != nil {
				return err
			}
		}
	}

	for _, arg := range args {
		c.readArg(arg)
	}

	return nil
}

func (c *Config) readArg(arg string) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || !strings.HasPrefix(key, "--") {
		return
	}

	switch strings.TrimPrefix(key, "--") {
	case "size":
		readCount(&c.Size, value)
	case "sample_num":
		readCount(&c.SampleNum, value)
	case "sample_pass_num":
		readCount(&c.SamplePassNum, value)
	case "use_random_offsets":
		readBool(&c.UseRandomOffsets, value)
	case "seed":
		readSeed(&c.Seed, value)
	case "huge_page_size":
		readCount(&c.HugePageSize, value)
	case "large_page_strategy":
		c.LargePageStrategy = value
	case "hugetlbfs_dir":
		c.HugetlbfsDir = value
	case "disable_thp":
		readBool(&c.DisableTHP, value)
	case "clock":
		c.Clock = value
	case "json_out":
		c.JSONOut = value
	case "verbose":
		readBool(&c.Verbose, value)
	}
}

func readCount(dst *int, value string) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return
	}

	*dst = parsed
}

func readSeed(dst *int64, value string) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return
	}

	*dst = parsed
}

func readBool(dst *bool, value string) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return
	}

	*dst = parsed
}
