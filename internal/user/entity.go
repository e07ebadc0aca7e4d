// AngelaMos | 2026
// entity.go

package user

// User mirrors one row of the usuarios table. Timestamps are stored as
// RFC 3339 text; nullable columns map to pointer fields.
type User struct {
	ID            int64   `db:"id"`
	FirstName     string  `db:"nome"`
	LastName      string  `db:"sobrenome"`
	CPF           string  `db:"cpf"`
	Login         string  `db:"nome_usuario"`
	PasswordHash  string  `db:"senha"`
	AdmissionDate *string `db:"data_admissao"`
	Role          *string `db:"tipo_acesso"`
	Active        bool    `db:"ativo"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     *string `db:"updated_at"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

func (u *User) IsAdmin() bool {
	return u.Role != nil && *u.Role == RoleAdmin
}

// RoleName returns the stored role, or "" when the record carries none.
// Values outside the known constants are passed through untouched; the
// repository is deliberately permissive about what it stores.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return *u.Role
}
