package graph

import (
	"bufio"
	"io"
	"strings"
)

// ParseEdmanCycles reads an Edman-data file: one cycle per line,
// whitespace-separated one-letter residue codes ('X' for "any
// residue"), blank lines and '#'-prefixed comments ignored.
func ParseEdmanCycles(r io.Reader) ([]EdmanCycle, error) {
	var cycles []EdmanCycle
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		symbols := make([]rune, 0, len(fields))
		for _, f := range fields {
			for _, r := range f {
				symbols = append(symbols, r)
			}
		}
		cycles = append(cycles, EdmanCycle{Symbols: symbols})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cycles, nil
}
