package Iservices

// IAuthService covers password hashing and bearer-token issuance for
// the HTTP layer.
type IAuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(entered, hashed string) bool
	CreateToken(email string) (string, error)
	ParseToken(token string) (string, error)
}
