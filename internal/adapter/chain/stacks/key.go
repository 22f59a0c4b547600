package stacks

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// bip39Rounds is the PBKDF2 iteration count fixed by BIP39.
const bip39Rounds = 2048

// NormalizeSecret turns the configured escrow secret material into the hex
// signing secret the custodian requests are authenticated with. Exactly one
// of rawHex (a hex-encoded secret key) or mnemonic (a BIP39 phrase) must be
// set; the two encodings are a parsing detail resolved here, before the
// client is constructed.
func NormalizeSecret(rawHex, mnemonic string) (string, error) {
	rawHex = strings.TrimSpace(rawHex)
	mnemonic = strings.TrimSpace(mnemonic)

	switch {
	case rawHex != "" && mnemonic != "":
		return "", fmt.Errorf("both escrow secret key and mnemonic are set; configure exactly one")
	case rawHex != "":
		if _, err := hex.DecodeString(rawHex); err != nil {
			return "", fmt.Errorf("escrow secret key is not valid hex: %w", err)
		}
		return strings.ToLower(rawHex), nil
	case mnemonic != "":
		return deriveFromMnemonic(mnemonic), nil
	default:
		return "", fmt.Errorf("no escrow secret material configured")
	}
}

// deriveFromMnemonic produces the BIP39 seed: PBKDF2-HMAC-SHA512 over the
// normalized phrase with the standard "mnemonic" salt (empty passphrase).
func deriveFromMnemonic(mnemonic string) string {
	phrase := strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	seed := pbkdf2.Key([]byte(phrase), []byte("mnemonic"), bip39Rounds, 64, sha512.New)
	return hex.EncodeToString(seed)
}
