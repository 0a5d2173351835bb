package model

import "golang.org/x/crypto/bcrypt"

// Administrator is a row of the administradores table.
type Administrator struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	SenhaHash string `json:"-" db:"senha_hash"` // never exposed
}

// AdministratorPatch carries the fields a PUT may change. SenhaHash must
// already be hashed; empty fields keep the stored value.
type AdministratorPatch struct {
	Email     string
	SenhaHash string
}

// Apply merges p into a copy of a.
func (a Administrator) Apply(p AdministratorPatch) Administrator {
	a.Email = pick(a.Email, p.Email)
	a.SenhaHash = pick(a.SenhaHash, p.SenhaHash)
	return a
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether senha matches the stored hash.
func (a Administrator) CheckPassword(senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.SenhaHash), []byte(senha)) == nil
}
