package capacity

import (
	"math"
	"strconv"
	"strings"
)

// Quantity is a resource amount in a fixed integer base unit: millicores for
// CPU, bytes for memory. All aggregation arithmetic happens in this integer
// domain; conversion to display units (cores, GB) happens only at the output
// boundary. A parsed Quantity is never negative.
type Quantity int64

// Binary and decimal memory multipliers.
const (
	unitKi = int64(1024)
	unitMi = unitKi * 1024
	unitGi = unitMi * 1024
	unitTi = unitGi * 1024

	unitK = int64(1000)
	unitM = unitK * 1000
	unitG = unitM * 1000
	unitT = unitG * 1000
)

// Memory display units. GB is binary (2^30 bytes) throughout: node sizes are
// declared in Gi, so a 32Gi node reports as 32.0 GB rather than 34.36.
const (
	bytesPerGB = float64(unitGi)
	bytesPerMB = float64(unitMi)
)

// maxQuantityFloat is the smallest float64 that no longer fits in int64.
// float64(math.MaxInt64) rounds up to exactly 2^63, so any product at or
// above it would overflow the conversion; the comparison must be >=.
const maxQuantityFloat = float64(math.MaxInt64)

// roundToQuantity converts a non-negative float product to a Quantity,
// reporting false when the value does not fit in the int64 domain.
func roundToQuantity(v float64) (Quantity, bool) {
	r := math.Round(v)
	if r >= maxQuantityFloat {
		return 0, false
	}
	return Quantity(r), true
}

// ParseCPU converts a Kubernetes CPU quantity string to millicores.
// A trailing "m" denotes millicores ("500m" -> 500); a bare number denotes
// whole cores and may carry a decimal fraction ("0.5" -> 500, "2" -> 2000).
// Negative values, unknown suffixes, and non-numeric content are rejected.
func ParseCPU(s string) (Quantity, error) {
	if s == "" {
		return 0, &MalformedQuantityError{Value: s, Reason: "empty string"}
	}
	if strings.HasSuffix(s, "m") {
		millicores, err := strconv.ParseInt(strings.TrimSuffix(s, "m"), 10, 64)
		if err != nil {
			return 0, &MalformedQuantityError{Value: s, Reason: "invalid millicore value"}
		}
		if millicores < 0 {
			return 0, &MalformedQuantityError{Value: s, Reason: "negative quantity"}
		}
		return Quantity(millicores), nil
	}
	cores, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(cores) || math.IsInf(cores, 0) {
		return 0, &MalformedQuantityError{Value: s, Reason: "invalid core value"}
	}
	if cores < 0 {
		return 0, &MalformedQuantityError{Value: s, Reason: "negative quantity"}
	}
	millicores, ok := roundToQuantity(cores * 1000)
	if !ok {
		return 0, &MalformedQuantityError{Value: s, Reason: "value out of range"}
	}
	return millicores, nil
}

// ParseMemory converts a Kubernetes memory quantity string to bytes.
// Binary suffixes (Ki, Mi, Gi, Ti) are powers of 1024, decimal suffixes
// (K, M, G, T) are powers of 1000, and a bare number denotes bytes.
// Negative values, unknown suffixes, and non-numeric content are rejected.
func ParseMemory(s string) (Quantity, error) {
	if s == "" {
		return 0, &MalformedQuantityError{Value: s, Reason: "empty string"}
	}

	number := s
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "Ki"):
		number, multiplier = strings.TrimSuffix(s, "Ki"), unitKi
	case strings.HasSuffix(s, "Mi"):
		number, multiplier = strings.TrimSuffix(s, "Mi"), unitMi
	case strings.HasSuffix(s, "Gi"):
		number, multiplier = strings.TrimSuffix(s, "Gi"), unitGi
	case strings.HasSuffix(s, "Ti"):
		number, multiplier = strings.TrimSuffix(s, "Ti"), unitTi
	case strings.HasSuffix(s, "K"):
		number, multiplier = strings.TrimSuffix(s, "K"), unitK
	case strings.HasSuffix(s, "M"):
		number, multiplier = strings.TrimSuffix(s, "M"), unitM
	case strings.HasSuffix(s, "G"):
		number, multiplier = strings.TrimSuffix(s, "G"), unitG
	case strings.HasSuffix(s, "T"):
		number, multiplier = strings.TrimSuffix(s, "T"), unitT
	default:
		if last := s[len(s)-1]; last != '.' && (last < '0' || last > '9') {
			return 0, &MalformedQuantityError{Value: s, Reason: "unknown suffix"}
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &MalformedQuantityError{Value: s, Reason: "invalid memory value"}
	}
	if value < 0 {
		return 0, &MalformedQuantityError{Value: s, Reason: "negative quantity"}
	}
	bytes, ok := roundToQuantity(value * float64(multiplier))
	if !ok {
		return 0, &MalformedQuantityError{Value: s, Reason: "value out of range"}
	}
	return bytes, nil
}

// FormatCPU renders millicores back into canonical Kubernetes quantity
// syntax: whole cores without a suffix, fractional cores in millicores.
func FormatCPU(q Quantity) string {
	if q%1000 == 0 {
		return strconv.FormatInt(int64(q)/1000, 10)
	}
	return strconv.FormatInt(int64(q), 10) + "m"
}

// FormatMemory renders bytes back into canonical Kubernetes quantity syntax
// using the largest binary suffix that divides the value evenly.
func FormatMemory(q Quantity) string {
	b := int64(q)
	switch {
	case b != 0 && b%unitTi == 0:
		return strconv.FormatInt(b/unitTi, 10) + "Ti"
	case b != 0 && b%unitGi == 0:
		return strconv.FormatInt(b/unitGi, 10) + "Gi"
	case b != 0 && b%unitMi == 0:
		return strconv.FormatInt(b/unitMi, 10) + "Mi"
	case b != 0 && b%unitKi == 0:
		return strconv.FormatInt(b/unitKi, 10) + "Ki"
	default:
		return strconv.FormatInt(b, 10)
	}
}

// Cores converts millicores to decimal cores for display.
func (q Quantity) Cores() float64 {
	return float64(q) / 1000
}

// GB converts bytes to binary gigabytes (2^30) for display.
func (q Quantity) GB() float64 {
	return float64(q) / bytesPerGB
}

// MB converts bytes to whole binary megabytes (2^20) for display.
func (q Quantity) MB() int64 {
	return int64(float64(q) / bytesPerMB)
}

// quantityFromCores converts a caller-supplied core count to millicores,
// reporting false when the product overflows the integer domain.
func quantityFromCores(cores float64) (Quantity, bool) {
	return roundToQuantity(cores * 1000)
}

// quantityFromGB converts a caller-supplied GB count to bytes, reporting
// false when the product overflows the integer domain.
func quantityFromGB(gb float64) (Quantity, bool) {
	return roundToQuantity(gb * bytesPerGB)
}

// validNumber reports whether a caller-supplied numeric parameter is usable.
func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
