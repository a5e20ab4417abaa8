package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DemoDirectory builds a small directory for local runs when no staff file
// is configured. Every account uses the same password.
func DemoDirectory(password string, cost int) (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	h := string(hash)

	return newDirectory(map[string]account{
		"oyuna": {Name: "Oyuna", Email: "oyuna@ayalguu.mn", Password: h, Role: RoleManager},
		"tuul":  {Name: "Tuul", Email: "tuul@ayalguu.mn", Password: h, Role: RoleEmployee},
		"bold":  {Name: "Bold", Email: "bold@ayalguu.mn", Password: h, Role: RoleEmployee},
	}, []string{"Saraa"})
}
