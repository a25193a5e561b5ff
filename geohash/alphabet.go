package geohash

import "fmt"

const (
	alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

	// MaxPrecision is the longest code whose bits fit in a uint64.
	MaxPrecision = 12

	bitsPerSymbol = 5
	symbolMask    = 0x1F
)

// symbolIndex maps an alphabet byte to its 5-bit value.
func symbolIndex(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'b' && c <= 'z' && c != 'i' && c != 'l' && c != 'o':
		// 'b' is 10; each excluded letter below c shifts it down by one.
		i := int(c-'b') + 10
		if c > 'i' {
			i--
		}
		if c > 'l' {
			i--
		}
		if c > 'o' {
			i--
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, c)
}

func validPrecision(precision uint) error {
	if precision == 0 || precision > MaxPrecision {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidPrecision, precision, MaxPrecision)
	}
	return nil
}

// ValidateCode reports whether code is a well-formed geohash that the numeric
// operations (Decode, Split, Neighbors) can handle.
func ValidateCode(code string) error {
	if err := validPrecision(uint(len(code))); err != nil {
		return fmt.Errorf("code %q: %w", code, err)
	}
	for i := 0; i < len(code); i++ {
		if _, err := symbolIndex(code[i]); err != nil {
			return fmt.Errorf("code %q at %d: %w", code, i, err)
		}
	}
	return nil
}

// codeValue folds the symbols of code into its interleaved bit value.
func codeValue(code string) (uint64, error) {
	if err := validPrecision(uint(len(code))); err != nil {
		return 0, fmt.Errorf("code %q: %w", code, err)
	}
	var v uint64
	for i := 0; i < len(code); i++ {
		idx, err := symbolIndex(code[i])
		if err != nil {
			return 0, fmt.Errorf("code %q at %d: %w", code, i, err)
		}
		v = v<<bitsPerSymbol | uint64(idx)
	}
	return v, nil
}

// valueCode is the inverse of codeValue for a known precision.
func valueCode(v uint64, precision uint) string {
	b := make([]byte, precision)
	for i := int(precision) - 1; i >= 0; i-- {
		b[i] = alphabet[v&symbolMask]
		v >>= bitsPerSymbol
	}
	return string(b)
}
