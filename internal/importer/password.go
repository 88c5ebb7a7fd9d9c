package importer

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength  = 24
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+"
)

// GeneratePassword creates a strong random password for a newly created
// account. The account owner is expected to reset it through the host
// platform; it is never shown to the operator.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordCharset)))
	buf := make([]byte, passwordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}
