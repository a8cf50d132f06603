package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/constants"
)

const houseCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateHouseCode generates a random house join code, e.g. "7KQ2ZD".
func GenerateHouseCode() (string, error) {
	bytes := make([]byte, constants.HouseCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, constants.HouseCodeLength)
	for i, b := range bytes {
		code[i] = houseCodeAlphabet[int(b)%len(houseCodeAlphabet)]
	}
	return string(code), nil
}
