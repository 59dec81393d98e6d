package cli

import (
	"errors"
	"math"
	"strconv"
)

var errNotInteger = errors.New("not a base-10 integer")

// parseStrict accepts an optionally signed base-10 integer and nothing else.
func parseStrict(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, strconv.ErrRange
		}

		return 0, errNotInteger
	}

	return v, nil
}

// parseLenient mirrors C atoi: skip leading whitespace, take an optional sign
// and as many digits as follow. No digits yields 0. Out-of-range values
// saturate.
func parseLenient(s string) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var v int64

	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int64(s[i] - '0')

		if v > (math.MaxInt64-d)/10 {
			if neg {
				return math.MinInt64
			}

			return math.MaxInt64
		}

		v = v*10 + d
	}

	if neg {
		return -v
	}

	return v
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

// clampInt narrows v to the platform int range.
func clampInt(v int64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}

	if v < math.MinInt {
		return math.MinInt
	}

	return int(v)
}
