package lexica

import (
	"fmt"
	"io"
	"strings"
)

// loadClusters reads Brown clusters, one "bitstring<TAB>word<TAB>count" row
// per line. The count column is optional.
func loadClusters(r io.Reader, lowercase bool) (map[string]string, error) {
	clusters := make(map[string]string)
	sc := newScanner(r)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected bitstring and word, got %q", lineNo, line)
		}
		path, word := fields[0], fields[1]
		if strings.Trim(path, "01") != "" {
			return nil, fmt.Errorf("line %d: cluster path %q is not a bitstring", lineNo, path)
		}
		if lowercase {
			word = strings.ToLower(word)
		}
		// First occurrence wins so a lowercased duplicate keeps the more
		// frequent casing's cluster.
		if _, ok := clusters[word]; !ok {
			clusters[word] = path
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return clusters, nil
}
