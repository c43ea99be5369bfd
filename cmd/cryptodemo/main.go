// Command cryptodemo is the CLI front door exercising every package in
// this module: encrypt/decrypt through the mode engine over any of the
// keyed ciphers, key generation, a Diffie-Hellman handshake demo, and
// RSA key generation plus Wiener's attack demo.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/integrii/flaggy"

	"github.com/emppress/cryptography/mode"
)

var version = "unversioned"

func main() {
	flaggy.SetName("cryptodemo")
	flaggy.SetDescription("Block and stream cipher demonstrations: DES/Triple-DES/DEAL/Rijndael/RC6/IDEA under a shared mode-of-operation engine, plus RSA and Diffie-Hellman.")
	flaggy.SetVersion(version)

	var debugging bool
	flaggy.Bool(&debugging, "d", "debug", "enable debug logging")

	encryptCmd, encFlags := newCryptCmd("encrypt", "Encrypt a file")
	decryptCmd, decFlags := newCryptCmd("decrypt", "Decrypt a file")

	genkeyCmd := flaggy.NewSubcommand("genkey")
	genkeyCmd.Description = "Generate a random key for an algorithm"
	var genkeyAlgo string
	genkeyCmd.String(&genkeyAlgo, "a", "algo", "algorithm (des, tripledes, deal, idea, rijndael-B-K, rc6-W-R)")

	dhCmd := flaggy.NewSubcommand("dh")
	dhCmd.Description = "Run a Diffie-Hellman key exchange demo"
	dhBits := 512
	dhCmd.Int(&dhBits, "b", "bits", "safe prime bit size")
	dhMessage := "demo session message"
	dhCmd.String(&dhMessage, "m", "message", "message to seal under the derived session key")

	rsaCmd := flaggy.NewSubcommand("rsa")
	rsaCmd.Description = "Generate an RSA key pair and optionally run Wiener's attack"
	rsaBits := 512
	rsaCmd.Int(&rsaBits, "b", "bits", "modulus bit length")
	rsaTest := "miller-rabin"
	rsaCmd.String(&rsaTest, "t", "test", "primality test: fermat, solovay-strassen, miller-rabin")
	rsaWeakD := false
	rsaCmd.Bool(&rsaWeakD, "w", "wiener", "construct a deliberately weak private exponent and run Wiener's attack against it")

	rc4Cmd, rc4Flags := newRC4Cmd()

	flaggy.AttachSubcommand(encryptCmd, 1)
	flaggy.AttachSubcommand(decryptCmd, 1)
	flaggy.AttachSubcommand(genkeyCmd, 1)
	flaggy.AttachSubcommand(dhCmd, 1)
	flaggy.AttachSubcommand(rsaCmd, 1)
	flaggy.AttachSubcommand(rc4Cmd, 1)

	flaggy.Parse()

	log := newLogger(debugging)

	var err error
	switch {
	case encryptCmd.Used:
		err = runCrypt(log, encFlags, true)
	case decryptCmd.Used:
		err = runCrypt(log, decFlags, false)
	case genkeyCmd.Used:
		err = runGenkey(log, genkeyAlgo)
	case dhCmd.Used:
		err = runDH(log, dhBits, dhMessage)
	case rsaCmd.Used:
		err = runRSADemo(log, rsaBits, rsaTest, rsaWeakD)
	case rc4Cmd.Used:
		err = runRC4(log, rc4Flags)
	default:
		flaggy.ShowHelp("")
		return
	}

	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// cryptFlags holds the flags shared by the encrypt and decrypt
// subcommands, bound directly to flaggy.NewSubcommand the way
// lazydocker binds its top-level flags in main().
type cryptFlags struct {
	algo    string
	mode    string
	padding string
	keyHex  string
	ivHex   string
	in      string
	out     string
}

func newCryptCmd(name, description string) (*flaggy.Subcommand, *cryptFlags) {
	cmd := flaggy.NewSubcommand(name)
	cmd.Description = description

	f := &cryptFlags{mode: "cbc", padding: "pkcs7"}
	cmd.String(&f.algo, "a", "algo", "algorithm (des, tripledes, deal, idea, rijndael-B-K, rc6-W-R)")
	cmd.String(&f.mode, "m", "mode", "cipher mode (ecb, cbc, pcbc, cfb, ofb, ctr, randomdelta)")
	cmd.String(&f.padding, "p", "padding", "padding scheme (zeros, ansix923, pkcs7, iso10126)")
	cmd.String(&f.keyHex, "k", "key", "key, hex-encoded")
	cmd.String(&f.ivHex, "i", "iv", "IV, hex-encoded (required unless mode is ecb or randomdelta)")
	cmd.String(&f.in, "f", "in", "input file path")
	cmd.String(&f.out, "o", "out", "output file path")
	return cmd, f
}

func runCrypt(log logger, f *cryptFlags, encrypting bool) error {
	if f.in == "" {
		return fmt.Errorf("--in is required")
	}
	if f.keyHex == "" {
		return fmt.Errorf("--key is required")
	}

	algo, _, err := parseAlgo(f.algo)
	if err != nil {
		return err
	}
	key, err := hex.DecodeString(f.keyHex)
	if err != nil {
		return fmt.Errorf("decoding --key: %w", err)
	}
	if err := algo.SetKey(key); err != nil {
		return fmt.Errorf("setting key: %w", err)
	}

	cipherMode, err := parseMode(f.mode)
	if err != nil {
		return err
	}
	paddingMode, err := parsePadding(f.padding)
	if err != nil {
		return err
	}

	var iv []byte
	if f.ivHex != "" {
		iv, err = hex.DecodeString(f.ivHex)
		if err != nil {
			return fmt.Errorf("decoding --iv: %w", err)
		}
	}

	engine, err := mode.New(algo, cipherMode, paddingMode, iv)
	if err != nil {
		return fmt.Errorf("constructing mode engine: %w", err)
	}

	out := f.out
	verb := "Encrypting"
	if !encrypting {
		verb = "Decrypting"
		if out == "" {
			return fmt.Errorf("--out is required for decrypt")
		}
	}
	log.Infof("%s %s with %s/%s/%s", verb, f.in, f.algo, cipherMode, paddingMode)

	var resultPath string
	if encrypting {
		resultPath, err = engine.EncryptFile(f.in, out).Wait()
	} else {
		resultPath, err = engine.DecryptFile(f.in, out).Wait()
	}
	if err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	log.Infof("wrote %s", resultPath)
	return nil
}

func runGenkey(log logger, algoName string) error {
	if algoName == "" {
		return fmt.Errorf("--algo is required")
	}
	_, keySize, err := parseAlgo(algoName)
	if err != nil {
		return err
	}
	key, err := randomKey(keySize)
	if err != nil {
		return err
	}
	log.Infof("generated %d-byte key for %s", keySize, algoName)
	fmt.Println(hex.EncodeToString(key))
	return nil
}

// logger is the subset of *logrus.Logger the subcommand handlers use,
// named so they don't have to import logrus themselves.
type logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
