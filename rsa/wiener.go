package rsa

import "math/big"

// Convergent is one term p/q of the continued-fraction expansion of
// E/N, a candidate for d/k in Wiener's attack.
type Convergent struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// WienerResult is the outcome of WienerAttack: the recovered private exponent
// and totient on success, plus the full convergent trail for
// inspection.
type WienerResult struct {
	D, Phi      *big.Int
	Convergents []Convergent
	Success     bool
}

// continuedFractionExpansion expands e/n as a continued fraction and
// returns its successive convergents h/k.
func continuedFractionExpansion(e, n *big.Int) []Convergent {
	a, b := new(big.Int).Set(e), new(big.Int).Set(n)
	h0, h1 := big.NewInt(1), big.NewInt(0)
	k0, k1 := big.NewInt(0), big.NewInt(1)

	var out []Convergent
	for b.Sign() != 0 {
		q := new(big.Int).Div(a, b)

		h := new(big.Int).Add(new(big.Int).Mul(q, h0), h1)
		k := new(big.Int).Add(new(big.Int).Mul(q, k0), k1)
		out = append(out, Convergent{Numerator: new(big.Int).Set(h), Denominator: new(big.Int).Set(k)})

		h1, h0 = h0, h
		k1, k0 = k0, k
		a, b = b, new(big.Int).Mod(a, b)
	}
	return out
}

// WienerAttack recovers the private exponent from a public key whose d
// is small enough (d < N^0.25 / 3) by walking the continued-fraction
// convergents of E/N and testing each as a d/k candidate: a hit makes
// phi = (ed-1)/k an integer from which p, q fall out of the quadratic
// x^2 - (N-phi+1)x + N = 0.
func WienerAttack(pub *PublicKey) *WienerResult {
	result := &WienerResult{}
	convergents := continuedFractionExpansion(pub.E, pub.N)
	result.Convergents = convergents

	for _, cf := range convergents {
		k, d := cf.Numerator, cf.Denominator
		if k.Sign() == 0 {
			continue
		}

		numerator := new(big.Int).Mul(pub.E, d)
		numerator.Sub(numerator, big.NewInt(1))
		if new(big.Int).Mod(numerator, k).Sign() != 0 {
			continue
		}
		phi := new(big.Int).Div(numerator, k)

		b := new(big.Int).Sub(pub.N, phi)
		b.Add(b, big.NewInt(1)) // p+q

		discriminant := new(big.Int).Mul(b, b)
		discriminant.Sub(discriminant, new(big.Int).Mul(big.NewInt(4), pub.N))
		if discriminant.Sign() < 0 {
			continue
		}
		sqrtD := new(big.Int).Sqrt(discriminant)
		if new(big.Int).Mul(sqrtD, sqrtD).Cmp(discriminant) != 0 {
			continue // not a perfect square, not a real root
		}

		p := new(big.Int).Add(b, sqrtD)
		p.Div(p, big.NewInt(2))
		q := new(big.Int).Sub(b, sqrtD)
		q.Div(q, big.NewInt(2))

		if new(big.Int).Mul(p, q).Cmp(pub.N) == 0 {
			result.D = d
			result.Phi = phi
			result.Success = true
			return result
		}
	}
	return result
}
