package auth

// Role define el área a la que accede el usuario.
// @Enum admin, client
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Session es lo que se guarda por pestaña tras un login exitoso.
type Session struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CSRFToken string `json:"csrf_token"`
}
