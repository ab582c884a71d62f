package number

import (
	"math/big"

	"github.com/nukata/goarith"
)

// Expt returns n raised to the exact integer power e, keeping exactness.
// A zero base with a negative exponent fails with ErrDivideByZero when n
// is exact.
func (n Number) Expt(e int64) (Number, error) {
	if n.inexact {
		return n.Pow(Int(e))
	}
	neg := e < 0
	if neg {
		e = -e
	}
	var result Number
	if n.IsReal() {
		re := n.reRat()
		num := powInt(re.Num(), uint64(e))
		den := powInt(re.Denom(), uint64(e))
		result = exact(new(big.Rat).SetFrac(num, den), nil)
	} else {
		result = Int(1)
		base := n
		for u := uint64(e); u > 0; u >>= 1 {
			if u&1 == 1 {
				result = result.Mul(base)
			}
			base = base.Mul(base)
		}
	}
	if neg {
		return result.Recip()
	}
	return result, nil
}

// powInt computes x^e by square-and-multiply over goarith numbers, which
// move from machine integers to big integers as products grow.
func powInt(x *big.Int, e uint64) *big.Int {
	result := goarith.AsNumber(big.NewInt(1))
	base := goarith.AsNumber(new(big.Int).Set(x))
	for u := e; u > 0; u >>= 1 {
		if u&1 == 1 {
			result = result.Mul(base)
		}
		if u > 1 {
			base = base.Mul(base)
		}
	}
	if z, ok := toBigInt(result); ok {
		return z
	}
	return new(big.Int).Exp(x, new(big.Int).SetUint64(e), nil)
}

// toBigInt converts an integral goarith number back to *big.Int.
func toBigInt(a goarith.Number) (*big.Int, bool) {
	switch x := a.(type) {
	case goarith.Int32:
		return big.NewInt(int64(x)), true
	case goarith.Int64:
		return big.NewInt(int64(x)), true
	case *goarith.BigInt:
		return new(big.Int).Set((*big.Int)(x)), true
	}
	return nil, false
}
