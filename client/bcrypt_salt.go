package client

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blowfish"
)

// hashPasswordWithFixedSalt reproduces bcrypt's hash algorithm using an
// explicit, caller-supplied salt rather than a randomly generated one.
//
// golang.org/x/crypto/bcrypt only exposes GenerateFromPassword, which
// always draws its salt from crypto/rand — there is no public API for
// hashing against a known salt. This protocol's login handshake requires
// exactly that: every client must bcrypt-hash the password against the
// same fixed salt so the server can verify it deterministically. The
// expensive key schedule below is built directly on
// golang.org/x/crypto/blowfish (the same primitive the bcrypt package
// itself wraps) since that package's ExpandKey and NewSaltedCipher are
// public.
func hashPasswordWithFixedSalt(password []byte, encodedSalt string) ([]byte, error) {
	if len(encodedSalt) < 7 || encodedSalt[0] != '$' || encodedSalt[1] != '2' {
		return nil, fmt.Errorf("client: malformed bcrypt salt %q", encodedSalt)
	}
	minor := encodedSalt[2]
	cost, err := strconv.Atoi(encodedSalt[4:6])
	if err != nil {
		return nil, fmt.Errorf("client: malformed bcrypt cost in salt %q: %w", encodedSalt, err)
	}
	rawSalt, err := bcryptEncoding.DecodeString(encodedSalt[7:])
	if err != nil {
		return nil, fmt.Errorf("client: decode bcrypt salt: %w", err)
	}
	if len(rawSalt) < 16 {
		return nil, fmt.Errorf("client: bcrypt salt too short: got %d bytes", len(rawSalt))
	}
	rawSalt = rawSalt[:16]

	hash, err := bcryptHash(password, uint32(cost), rawSalt)
	if err != nil {
		return nil, err
	}

	encodedHash := bcryptEncoding.EncodeToString(hash)
	saltField := encodedSalt[7:]
	return []byte(fmt.Sprintf("$2%c$%02d$%s%s", minor, cost, saltField, encodedHash)), nil
}

// bcryptAlphabet is bcrypt's own base64 alphabet, distinct from both the
// standard and URL-safe alphabets.
const bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var bcryptEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)

// magicCipherData is the fixed 24-byte plaintext bcrypt encrypts
// repeatedly — the ASCII string "OrpheanBeholderScryDoubt".
var magicCipherData = []byte{
	0x4f, 0x72, 0x70, 0x68,
	0x65, 0x61, 0x6e, 0x42,
	0x65, 0x68, 0x6f, 0x6c,
	0x64, 0x65, 0x72, 0x53,
	0x63, 0x72, 0x79, 0x44,
	0x6f, 0x75, 0x62, 0x74,
}

func bcryptHash(password []byte, cost uint32, salt []byte) ([]byte, error) {
	cipherData := make([]byte, len(magicCipherData))
	copy(cipherData, magicCipherData)

	c, err := expensiveBlowfishSetup(password, cost, salt)
	if err != nil {
		return nil, err
	}

	for i := 0; i < 24; i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(cipherData[i:i+8], cipherData[i:i+8])
		}
	}
	// Historical bcrypt quirk: only 23 of the 24 encrypted bytes are
	// encoded into the final hash.
	return cipherData[:23], nil
}

func expensiveBlowfishSetup(key []byte, cost uint32, salt []byte) (*blowfish.Cipher, error) {
	// bcrypt uses the trailing NUL in the password during expansion.
	ckey := append(append([]byte(nil), key...), 0)

	c, err := blowfish.NewSaltedCipher(ckey, salt)
	if err != nil {
		return nil, err
	}

	rounds := uint64(1) << cost
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(ckey, c)
		blowfish.ExpandKey(salt, c)
	}
	return c, nil
}
