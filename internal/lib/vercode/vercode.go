// Package vercode генерирует коды подтверждения электронной почты.
package vercode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New возвращает случайный 6-значный код в виде строки, диапазон 100000-999999.
func New() (string, error) {
	const op = "vercode.New"
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
