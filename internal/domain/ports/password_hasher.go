package ports

//go:generate go tool mockgen -destination password_hasher_mock.go -package ports . PasswordHasher

// PasswordHasher gera e confere hashes de senha de mão única
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
