package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// maxLineSize bounds a single input line
const maxLineSize = 16 * 1024 * 1024

// ParseSequence reads numbers separated by whitespace or commas
func ParseSequence(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	seq := make([]float64, 0)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q: %w", line, f, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: non-finite value %q", line, f)
			}
			seq = append(seq, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}
	return seq, nil
}
