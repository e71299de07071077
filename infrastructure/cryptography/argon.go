package cryptography

import (
	"attendly.io/infrastructure/logger"
	"github.com/matthewhartstonge/argon2"
)

type argonHasher struct{}

func (ah argonHasher) HashString(data string, salt []byte) ([]byte, error) {
	config := argon2.DefaultConfig()
	raw, err := config.Hash([]byte(data), salt)
	if err != nil {
		logger.Error("argon - error while hashing data", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	return raw.Encode(), nil
}

func (ah argonHasher) VerifyHashData(hash string, data string) bool {
	raw, err := argon2.Decode([]byte(hash))
	if err != nil {
		logger.Error("argon - could not decode data", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	ok, err := raw.Verify([]byte(data))
	if err != nil {
		logger.Error("argon - error while verifying data", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		ok = false
	}

	return ok
}
