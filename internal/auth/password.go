package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength   = 12
	upperChars       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars       = "abcdefghijklmnopqrstuvwxyz"
	digitChars       = "0123456789"
	symbolChars      = "!@#$%&*"
	passwordAlphabet = lowerChars + upperChars + digitChars + symbolChars
)

// GeneratePassword produces a 12-character random password with at least
// one uppercase letter, one lowercase letter, one digit and one symbol,
// shuffled so the guaranteed characters are not at fixed positions.
func GeneratePassword() (string, error) {
	buf := make([]byte, 0, passwordLength)

	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	for len(buf) < passwordLength {
		c, err := randomChar(passwordAlphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates with crypto/rand
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
