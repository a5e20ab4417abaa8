package auth

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
}

type staffFile struct {
	Credentials struct {
		Usernames map[string]account `yaml:"usernames"`
	} `yaml:"credentials"`
	Roster []string `yaml:"roster"`
}

// Directory is the staff list: login accounts plus the bookable roster.
// It is immutable after load.
type Directory struct {
	accounts map[string]account
	roster   map[string]struct{}
}

func LoadDirectory(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staff file: %w", err)
	}
	return ParseDirectory(raw)
}

func ParseDirectory(raw []byte) (*Directory, error) {
	var f staffFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse staff file: %w", err)
	}
	return newDirectory(f.Credentials.Usernames, f.Roster)
}

func newDirectory(accounts map[string]account, extra []string) (*Directory, error) {
	d := &Directory{
		accounts: make(map[string]account, len(accounts)),
		roster:   make(map[string]struct{}),
	}

	for username, a := range accounts {
		username = strings.ToLower(strings.TrimSpace(username))
		a.Name = strings.TrimSpace(a.Name)

		if username == "" {
			return nil, errors.New("staff file: empty username")
		}
		if !a.Role.Valid() {
			return nil, fmt.Errorf("staff file: user %q has unknown role %q", username, a.Role)
		}
		if a.Name == "" {
			a.Name = username
		}

		d.accounts[username] = a
		if a.Role == RoleEmployee {
			d.roster[a.Name] = struct{}{}
		}
	}

	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			d.roster[name] = struct{}{}
		}
	}

	if len(d.accounts) == 0 {
		return nil, errors.New("staff file: no accounts")
	}
	return d, nil
}

// Resolve maps a principal (username) to its identity.
func (d *Directory) Resolve(principal string) (Identity, error) {
	username := strings.ToLower(strings.TrimSpace(principal))
	a, ok := d.accounts[username]
	if !ok {
		return Identity{}, domain.Unauthorized("unknown user")
	}
	return Identity{Username: username, Name: a.Name, Role: a.Role}, nil
}

func (d *Directory) Authenticate(username, password string) (Identity, error) {
	id, err := d.Resolve(username)
	if err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	hash := d.accounts[id.Username].Password
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

func (d *Directory) Authorize(id Identity, action Action, target Target) bool {
	return Authorize(id, action, target)
}

func (d *Directory) IsEmployee(name string) bool {
	_, ok := d.roster[name]
	return ok
}

// Employees returns the roster sorted by name.
func (d *Directory) Employees() []string {
	out := make([]string, 0, len(d.roster))
	for name := range d.roster {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
