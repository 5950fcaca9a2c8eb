package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// User - состояние пользователя, которое нужно ядру открытия кейсов
type User struct {
	ID         int
	Balance    int
	Blocked    bool
	Experience int
	DrawNonce  uint64
}

type UserClaims struct {
	jwt.RegisteredClaims
}
