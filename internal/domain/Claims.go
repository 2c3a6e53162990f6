package domain

import "github.com/golang-jwt/jwt/v5"

// Claims carregadas no token das rotas de disparo
type Claims struct {
	UserID string `json:"user_id"`
	RoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}
