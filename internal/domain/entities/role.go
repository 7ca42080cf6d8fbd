package entities

// Role representa o papel de quem faz a requisição
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission representa uma permissão específica
type Permission string

const (
	PermissionUserRead   Permission = "users.read"
	PermissionUserWrite  Permission = "users.write"
	PermissionUserDelete Permission = "users.delete"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionUserRead,
		PermissionUserWrite,
		PermissionUserDelete,
	},
	RoleUser: {
		PermissionUserRead,
		PermissionUserWrite,
		PermissionUserDelete,
	},
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	for _, p := range RolePermissions[r] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanActOn verifica se o role pode aplicar a permissão sobre o usuário alvo.
// Usuários comuns só agem sobre o próprio registro.
func (r Role) CanActOn(permission Permission, subjectID, targetID uint) bool {
	if !r.HasPermission(permission) {
		return false
	}
	if r == RoleAdmin {
		return true
	}
	return subjectID == targetID
}
