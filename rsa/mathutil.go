// Package rsa implements textbook RSA key generation (with a choice of
// probabilistic primality tests) and Wiener's attack against RSA keys
// with a too-small private exponent, built on math/big throughout.
package rsa

import "math/big"

// legendreSymbol computes the Legendre symbol (a/p) for prime p.
func legendreSymbol(a, p *big.Int) int {
	if a.Sign() == 0 {
		return 0
	}
	exp := new(big.Int).Sub(p, big.NewInt(1))
	exp.Div(exp, big.NewInt(2))
	result := new(big.Int).Exp(a, exp, p)

	switch {
	case result.Sign() == 0:
		return 0
	case result.Cmp(big.NewInt(1)) == 0:
		return 1
	default:
		return -1
	}
}

// jacobiSymbol computes the Jacobi symbol (a/n) for odd n, used by the
// Solovay-Strassen primality test.
func jacobiSymbol(a, n *big.Int) int {
	if n.Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	if a.Sign() == 0 {
		return 0
	}

	aT := new(big.Int).Set(a)
	nT := new(big.Int).Set(n)
	result := 1

	two := big.NewInt(2)
	for aT.Sign() != 0 {
		for new(big.Int).Mod(aT, two).Sign() == 0 {
			aT.Div(aT, two)
			mod8 := new(big.Int).Mod(nT, big.NewInt(8))
			if mod8.Cmp(big.NewInt(3)) == 0 || mod8.Cmp(big.NewInt(5)) == 0 {
				result = -result
			}
		}

		aT, nT = nT, aT

		if new(big.Int).Mod(aT, big.NewInt(4)).Cmp(big.NewInt(3)) == 0 &&
			new(big.Int).Mod(nT, big.NewInt(4)).Cmp(big.NewInt(3)) == 0 {
			result = -result
		}
		aT.Mod(aT, nT)
	}

	if nT.Cmp(big.NewInt(1)) == 0 {
		return result
	}
	return 0
}

// extendedGCD solves Bezout's identity ax + by = gcd(a,b), returning
// (gcd, x, y).
func extendedGCD(a, b *big.Int) (gcd, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}

	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}
	return oldR, oldS, oldT
}

// modPow computes base^exp mod m via square-and-multiply.
func modPow(base, exp, m *big.Int) *big.Int {
	result := big.NewInt(1)
	b := new(big.Int).Mod(base, m)
	e := new(big.Int).Set(exp)
	two := big.NewInt(2)

	for e.Sign() > 0 {
		if new(big.Int).Mod(e, two).Cmp(big.NewInt(1)) == 0 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
		e.Div(e, two)
		b.Mul(b, b)
		b.Mod(b, m)
	}
	return result
}
