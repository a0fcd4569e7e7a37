package session

// Roles
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

var AllRoles = []string{RoleAdmin, RoleInstructor, RoleStudent}

// User is the signed-in user as stored on the client.
type User struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// ValidRole reports whether role is one of AllRoles.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
