package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a printed money or quantity value such as "12,50",
// "1.234,50 TL", "₺3.75" or "2 x". Currency marks and other letters are
// ignored.
//
// When both '.' and ',' appear the last one is the decimal separator. A
// single separator that occurs once is the decimal separator; one that
// repeats groups thousands.
func ParseAmount(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.Trim(digits, ".,-") == "" {
		return decimal.Zero, fmt.Errorf("%w: no amount in %q", ErrInvalidInput, s)
	}

	dot, comma := strings.LastIndex(digits, "."), strings.LastIndex(digits, ",")
	var decimalSep, groupSep string
	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			decimalSep, groupSep = ".", ","
		} else {
			decimalSep, groupSep = ",", "."
		}
	case comma >= 0:
		decimalSep, groupSep = ",", "."
		if strings.Count(digits, ",") > 1 {
			decimalSep, groupSep = "", ","
		}
	case dot >= 0:
		decimalSep, groupSep = ".", ","
		if strings.Count(digits, ".") > 1 {
			decimalSep, groupSep = "", "."
		}
	}

	digits = strings.ReplaceAll(digits, groupSep, "")
	if decimalSep == "," {
		digits = strings.Replace(digits, ",", ".", 1)
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", ErrInvalidInput, s, err)
	}
	return d, nil
}
