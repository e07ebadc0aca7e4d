// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/carterperez-dev/cantina-core/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, id int64, params UpdateParams) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context, includeInactive bool) ([]User, error)
}

// UpdateParams is the repository-level field set; the service maps the
// plaintext password from UpdateUserRequest into PasswordHash before it
// gets here.
type UpdateParams struct {
	FirstName     *string
	LastName      *string
	CPF           *string
	Login         *string
	PasswordHash  *string
	AdmissionDate *string
	Role          *string
	Active        *bool
}

type repository struct {
	db core.DBTX
}

// NewRepository ensures the backing table exists before returning; the
// schema statement is idempotent and safe to run on every startup.
func NewRepository(ctx context.Context, db core.DBTX) (Repository, error) {
	r := &repository{db: db}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *repository) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS usuarios (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL,
			sobrenome TEXT NOT NULL,
			cpf INTEGER UNIQUE NOT NULL,
			nome_usuario TEXT UNIQUE NOT NULL,
			senha TEXT NOT NULL,
			data_admissao DATE,
			tipo_acesso TEXT,
			ativo INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT
		)`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure usuarios table: %w", err)
	}

	return nil
}

const userColumns = `id, nome, sobrenome, cpf, nome_usuario, senha,
		       data_admissao, tipo_acesso, ativo, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO usuarios (nome, sobrenome, cpf, nome_usuario, senha,
		                      data_admissao, tipo_acesso, ativo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`

	user.Active = true
	user.CreatedAt = nowUTC()

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.CPF,
		user.Login,
		user.PasswordHash,
		user.AdmissionDate,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	return nil
}

func (r *repository) Update(
	ctx context.Context,
	id int64,
	params UpdateParams,
) (bool, error) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if params.FirstName != nil {
		set("nome", *params.FirstName)
	}
	if params.LastName != nil {
		set("sobrenome", *params.LastName)
	}
	if params.CPF != nil {
		set("cpf", *params.CPF)
	}
	if params.Login != nil {
		set("nome_usuario", *params.Login)
	}
	if params.PasswordHash != nil {
		set("senha", *params.PasswordHash)
	}
	if params.AdmissionDate != nil {
		set("data_admissao", *params.AdmissionDate)
	}
	if params.Role != nil {
		set("tipo_acesso", *params.Role)
	}
	if params.Active != nil {
		set("ativo", *params.Active)
	}

	if len(sets) == 0 {
		return false, nil
	}

	set("updated_at", nowUTC())
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE usuarios SET %s WHERE id = ?",
		strings.Join(sets, ", "),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return false, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return false, fmt.Errorf("update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}

	return rows > 0, nil
}

// Delete removes the row permanently. Deactivation is an update of the
// ativo flag, not a delete.
func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(
		ctx,
		"DELETE FROM usuarios WHERE id = ?",
		id,
	)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM usuarios WHERE id = ?",
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByLogin(
	ctx context.Context,
	login string,
) (*User, error) {
	if login == "" {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM usuarios WHERE nome_usuario = ?",
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", err)
	}

	return &user, nil
}

func (r *repository) List(
	ctx context.Context,
	includeInactive bool,
) ([]User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM usuarios ORDER BY id DESC",
		userColumns,
	)
	if !includeInactive {
		query = fmt.Sprintf(
			"SELECT %s FROM usuarios WHERE ativo = 1 ORDER BY id DESC",
			userColumns,
		)
	}

	users := make([]User, 0)
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func isDuplicateKeyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
