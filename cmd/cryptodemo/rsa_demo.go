package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/emppress/cryptography/rsa"
)

func parsePrimalityTest(name string) (rsa.PrimalityTest, error) {
	switch strings.ToLower(name) {
	case "fermat":
		return rsa.FermatTest{}, nil
	case "solovay-strassen", "solovaystrassen":
		return rsa.SolovayStrassenTest{}, nil
	case "miller-rabin", "millerrabin":
		return rsa.MillerRabinTest{}, nil
	default:
		return nil, fmt.Errorf("unknown primality test %q (want fermat, solovay-strassen, miller-rabin)", name)
	}
}

// runRSADemo generates an RSA key pair, encrypts and decrypts a sample
// message, and, when weakD is set, constructs a key pair with a
// deliberately small private exponent and runs Wiener's attack against
// it, the same construction rsa_test.go uses to confirm the attack
// works.
func runRSADemo(log logger, bits int, testName string, weakD bool) error {
	test, err := parsePrimalityTest(testName)
	if err != nil {
		return err
	}

	if weakD {
		return runWienerDemo(log, bits)
	}

	log.Infof("generating a %d-bit RSA key pair with %s", bits, testName)
	kg := rsa.NewKeyGenerator(test, 0.999, bits)
	pub, priv, err := kg.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}
	fmt.Printf("N: %s\n", pub.N.String())
	fmt.Printf("E: %s\n", pub.E.String())

	message := big.NewInt(424242)
	ct, err := rsa.Encrypt(pub, message)
	if err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}
	pt := rsa.Decrypt(priv, ct)
	log.Infof("round trip ok: %v", pt.Cmp(message) == 0)
	fmt.Printf("plaintext:  %s\nciphertext: %s\nrecovered:  %s\n", message, ct, pt)
	return nil
}

func runWienerDemo(log logger, bits int) error {
	half := bits / 2
	p, err := rand.Prime(rand.Reader, half)
	if err != nil {
		return fmt.Errorf("generating p: %w", err)
	}
	q, err := rand.Prime(rand.Reader, half)
	if err != nil {
		return fmt.Errorf("generating q: %w", err)
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, big.NewInt(1)),
		new(big.Int).Sub(q, big.NewInt(1)),
	)

	d := big.NewInt(17) // deliberately tiny private exponent, well under N^0.25/3
	e, err := modInverse(d, phi)
	if err != nil {
		return fmt.Errorf("deriving public exponent: %w", err)
	}

	pub := &rsa.PublicKey{N: n, E: e}
	log.Infof("constructed a %d-bit key with private exponent d=%s", bits, d)

	result := rsa.WienerAttack(pub)
	if !result.Success {
		fmt.Println("Wiener's attack did not recover the private exponent")
		return nil
	}
	fmt.Printf("recovered d: %s (actual: %s)\n", result.D, d)
	fmt.Printf("recovered phi: %s\n", result.Phi)
	return nil
}

func modInverse(a, n *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, n)
	if inv == nil {
		return nil, fmt.Errorf("%s has no inverse mod %s", a, n)
	}
	return inv, nil
}
