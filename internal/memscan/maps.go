package memscan

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// parseMapsRegions parses the /proc/<pid>/maps format into readable
// regions, preserving file order. Lines without the read permission bit,
// with end <= start, or that fail to parse are dropped silently: a maps
// listing is a moving target and a malformed line is not worth failing
// the scan over.
func parseMapsRegions(r io.Reader) []Region {
	var regions []Region

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		// Field 0: "start-end" in hex. Field 1: perms, e.g. "r-xp".
		if !strings.Contains(fields[1], "r") {
			continue
		}

		bounds := strings.SplitN(fields[0], "-", 2)
		if len(bounds) != 2 {
			continue
		}
		start, err := strconv.ParseUint(bounds[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(bounds[1], 16, 64)
		if err != nil {
			continue
		}
		if end <= start {
			continue
		}

		regions = append(regions, Region{Start: start, End: end})
	}

	return regions
}
