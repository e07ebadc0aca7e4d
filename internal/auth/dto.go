// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/carterperez-dev/cantina-core/internal/user"
)

// Result is the uniform outcome of an authentication attempt. Every
// failure path collapses to the zero value: callers cannot tell an
// unknown username from a wrong password.
type Result struct {
	OK   bool
	Role string
	User *user.User
}
