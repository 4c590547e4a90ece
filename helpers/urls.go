package helpers

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxLineLength caps a single line of the product list
const maxLineLength = 1 << 20

// ReadURLList reads one URL per line from path. Lines are whitespace-trimmed,
// blank lines are skipped and order is preserved.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open product list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read product list: %w", err)
	}

	return urls, nil
}
