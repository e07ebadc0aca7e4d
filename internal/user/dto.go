// AngelaMos | 2026
// dto.go

package user

type CreateUserRequest struct {
	FirstName     string  `validate:"required,min=1,max=100"`
	LastName      string  `validate:"max=100"`
	CPF           string  `validate:"max=32"`
	Login         string  `validate:"required,min=1,max=64"`
	Password      string  `validate:"required,min=1,max=128"`
	AdmissionDate *string `validate:"omitempty,max=32"`
	Role          *string `validate:"omitempty,max=32"`
}

// UpdateUserRequest enumerates every field an update may touch; nil means
// "leave unchanged". There is no other way to reach a column, so unknown
// fields simply cannot be expressed.
type UpdateUserRequest struct {
	FirstName     *string `validate:"omitempty,min=1,max=100"`
	LastName      *string `validate:"omitempty,max=100"`
	CPF           *string `validate:"omitempty,max=32"`
	Login         *string `validate:"omitempty,min=1,max=64"`
	Password      *string `validate:"omitempty,min=1,max=128"`
	AdmissionDate *string `validate:"omitempty,max=32"`
	Role          *string `validate:"omitempty,max=32"`
	Active        *bool
}

func (r UpdateUserRequest) isEmpty() bool {
	return r.FirstName == nil &&
		r.LastName == nil &&
		r.CPF == nil &&
		r.Login == nil &&
		r.Password == nil &&
		r.AdmissionDate == nil &&
		r.Role == nil &&
		r.Active == nil
}
