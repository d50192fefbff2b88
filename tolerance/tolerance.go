// Package tolerance resolves the -z/--z-offset flag: either a single
// uniform vertical tolerance applied to every vertex, or a per-vertex
// tolerance file in the same row shape as a gr3 vertex block
// ("idx x y z_offset").
package tolerance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrParse indicates a per-vertex z_offset file is structurally malformed.
var ErrParse = fmt.Errorf("tolerance: malformed z_offset file")

// ParseSpec interprets a -z flag value. If spec parses as a float, it is a
// uniform tolerance (second return nil). Otherwise spec is treated as a
// path to a per-vertex tolerance file, which is parsed and returned keyed by
// 1-based vertex index (first return 0).
func ParseSpec(spec string) (uniform float64, perVertex map[int]float64, err error) {
	if v, err := strconv.ParseFloat(spec, 64); err == nil {
		return v, nil, nil
	}

	f, err := os.Open(spec)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	perVertex, err = decode(f)
	if err != nil {
		return 0, nil, err
	}
	return 0, perVertex, nil
}

func decode(r io.Reader) (map[int]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing title line", ErrParse)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing vertex count line", ErrParse)
	}

	out := make(map[int]float64)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: row %q: expected \"idx x y z_offset\"", ErrParse, line)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: index: %v", ErrParse, err)
		}
		z, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: z_offset: %v", ErrParse, err)
		}
		out[idx] = z
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tolerance: %w", err)
	}
	return out, nil
}
