package auth

import "strings"

// Claims representa la identidad autenticada que llega en cada request.
type Claims struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// IsAdmin indica si el rol del token está entre los roles administrativos.
// La comparación no distingue mayúsculas.
func (c Claims) IsAdmin(adminRoles []string) bool {
	role := strings.TrimSpace(c.Role)
	if role == "" {
		return false
	}
	for _, r := range adminRoles {
		if strings.EqualFold(role, strings.TrimSpace(r)) {
			return true
		}
	}
	return false
}

// DisplayName devuelve el username o, si no vino, el id de usuario.
func (c Claims) DisplayName() string {
	if n := strings.TrimSpace(c.Username); n != "" {
		return n
	}
	return c.UserID
}
