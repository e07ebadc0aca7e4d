// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cantina-core/internal/config"
	"github.com/carterperez-dev/cantina-core/internal/core"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	store, err := core.NewStore(context.Background(), config.DatabaseConfig{
		Path:        ":memory:",
		BusyTimeout: time.Second,
		ForeignKeys: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	repo, err := NewRepository(context.Background(), store.DB)
	require.NoError(t, err)

	return repo
}

func testUser(login, cpf string) *User {
	return &User{
		FirstName:    "Ana",
		LastName:     "Silva",
		CPF:          cpf,
		Login:        login,
		PasswordHash: "00ff:aa11",
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	role := RoleStaff
	admission := "2026-02-01"
	u := testUser("ana", "111")
	u.Role = &role
	u.AdmissionDate = &admission

	require.NoError(t, repo.Create(ctx, u))
	assert.Positive(t, u.ID)
	assert.True(t, u.Active)
	assert.NotEmpty(t, u.CreatedAt)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "Silva", got.LastName)
	assert.Equal(t, "111", got.CPF)
	assert.Equal(t, "ana", got.Login)
	assert.Equal(t, "00ff:aa11", got.PasswordHash)
	require.NotNil(t, got.Role)
	assert.Equal(t, RoleStaff, *got.Role)
	require.NotNil(t, got.AdmissionDate)
	assert.Equal(t, admission, *got.AdmissionDate)
	assert.True(t, got.Active)
	assert.Nil(t, got.UpdatedAt, "updated_at must be unset until first update")
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByLogin(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDuplicateLogin(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := testUser("ana", "111")
	require.NoError(t, repo.Create(ctx, first))

	dup := testUser("ana", "222")
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, core.ErrDuplicateKey)

	// the original row survives the failed insert
	got, err := repo.GetByLogin(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "111", got.CPF)
}

func TestCreateDuplicateCPF(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, testUser("ana", "111")))

	err := repo.Create(ctx, testUser("beatriz", "111"))
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateNoFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	u := testUser("ana", "111")
	require.NoError(t, repo.Create(ctx, u))

	changed, err := repo.Update(ctx, u.ID, UpdateParams{})
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UpdatedAt)
}

func TestUpdateFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	u := testUser("ana", "111")
	require.NoError(t, repo.Create(ctx, u))

	newFirst := "Beatriz"
	inactive := false
	changed, err := repo.Update(ctx, u.ID, UpdateParams{
		FirstName: &newFirst,
		Active:    &inactive,
	})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", got.FirstName)
	assert.False(t, got.Active)
	assert.Equal(t, "Silva", got.LastName, "untouched fields keep their value")
	require.NotNil(t, got.UpdatedAt)
}

func TestUpdateDuplicateLogin(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, testUser("ana", "111")))
	other := testUser("beatriz", "222")
	require.NoError(t, repo.Create(ctx, other))

	taken := "ana"
	_, err := repo.Update(ctx, other.ID, UpdateParams{Login: &taken})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateMissingUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	name := "Ghost"
	changed, err := repo.Update(ctx, 42, UpdateParams{FirstName: &name})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestDeleteIsHard(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	u := testUser("ana", "111")
	require.NoError(t, repo.Create(ctx, u))

	deleted, err := repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// gone even when inactive rows are requested
	users, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, users)

	deleted, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListOrderingAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := testUser("ana", "111")
	second := testUser("beatriz", "222")
	third := testUser("carla", "333")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))

	inactive := false
	_, err := repo.Update(ctx, second.ID, UpdateParams{Active: &inactive})
	require.NoError(t, err)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "carla", active[0].Login, "newest id first")
	assert.Equal(t, "ana", active[1].Login)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "beatriz", all[1].Login)
}
