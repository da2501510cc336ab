package types

type Role string

const (
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

// Session is the payload carried by the encrypted session cookie. Username
// is empty for the administrator.
type Session struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
}
