package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a token is not a finite number.
var ErrInvalidInput = errors.New("invalid input")

// ParseNumbers splits line on whitespace and parses every token as a finite
// float64. A blank line yields ErrEmptyInput.
func ParseNumbers(line string) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyInput
	}

	nums := make([]float64, 0, len(fields))
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite number", ErrInvalidInput, tok)
		}
		nums = append(nums, v)
	}
	return nums, nil
}
