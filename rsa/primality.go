package rsa

import (
	"crypto/rand"
	"math"
	"math/big"
)

// PrimalityTest decides, with at least minProbability confidence, that
// n is prime.
type PrimalityTest interface {
	IsProbablyPrime(n *big.Int, minProbability float64) bool
}

// roundsFor picks the number of independent trial rounds needed for a
// test whose single round halves the error probability (Fermat,
// Solovay-Strassen, Miller-Rabin all have this property) to reach
// minProbability.
func roundsFor(minProbability float64) int {
	if minProbability >= 1.0 || minProbability < 0.5 {
		minProbability = 0.99999
	}
	errProb := 1.0 - minProbability
	rounds := int(math.Ceil(math.Log(errProb) / math.Log(0.5)))
	if rounds < 1 {
		rounds = 1
	}
	return rounds
}

// runRounds is the common skeleton every test below follows: reject
// small/even n outright, then repeat a witness-dependent iteration
// roundsFor(minProbability) times, picking a fresh random witness each
// round.
func runRounds(n *big.Int, minProbability float64, iteration func(n, witness *big.Int) bool) bool {
	if n.Cmp(big.NewInt(2)) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if n.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	if new(big.Int).Mod(n, big.NewInt(2)).Sign() == 0 {
		return false
	}

	for i, rounds := 0, roundsFor(minProbability); i < rounds; i++ {
		a, err := rand.Int(rand.Reader, new(big.Int).Sub(n, big.NewInt(3)))
		if err != nil {
			return false
		}
		a.Add(a, big.NewInt(2))

		if !iteration(n, a) {
			return false
		}
	}
	return true
}

// FermatTest is the Fermat primality test: a^(n-1) ≡ 1 (mod n).
type FermatTest struct{}

func (FermatTest) IsProbablyPrime(n *big.Int, minProbability float64) bool {
	return runRounds(n, minProbability, func(n, a *big.Int) bool {
		return modPow(a, new(big.Int).Sub(n, big.NewInt(1)), n).Cmp(big.NewInt(1)) == 0
	})
}

// SolovayStrassenTest checks a^((n-1)/2) ≡ Jacobi(a,n) (mod n).
type SolovayStrassenTest struct{}

func (SolovayStrassenTest) IsProbablyPrime(n *big.Int, minProbability float64) bool {
	return runRounds(n, minProbability, func(n, a *big.Int) bool {
		j := big.NewInt(int64(jacobiSymbol(a, n)))
		if j.Sign() < 0 {
			j.Add(j, n)
		}
		exp := new(big.Int).Sub(n, big.NewInt(1))
		exp.Div(exp, big.NewInt(2))
		return modPow(a, exp, n).Cmp(j) == 0
	})
}

// MillerRabinTest is the standard Miller-Rabin witness test.
type MillerRabinTest struct{}

func (MillerRabinTest) IsProbablyPrime(n *big.Int, minProbability float64) bool {
	return runRounds(n, minProbability, func(n, a *big.Int) bool {
		nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
		s := 0
		d := new(big.Int).Set(nMinus1)
		for new(big.Int).Mod(d, big.NewInt(2)).Sign() == 0 {
			s++
			d.Div(d, big.NewInt(2))
		}

		x := modPow(a, d, n)
		if x.Cmp(big.NewInt(1)) == 0 || x.Cmp(nMinus1) == 0 {
			return true
		}
		for i := 0; i < s-1; i++ {
			x = modPow(x, big.NewInt(2), n)
			if x.Cmp(nMinus1) == 0 {
				return true
			}
		}
		return false
	})
}
