package model

import "github.com/google/uuid"

// Principal — идентичность запроса, восстановленная из токена.
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
