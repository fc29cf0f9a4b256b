package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 는 회원가입/비밀번호 재설정 시 해시 비용이다.
const bcryptCost = 12

const minPasswordLength = 6

// HashPassword 는 평문 비밀번호의 bcrypt 해시를 생성한다.
func HashPassword(plain string) (string, error) {
	if len(plain) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 는 평문과 저장된 해시가 일치하는지 확인한다.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
