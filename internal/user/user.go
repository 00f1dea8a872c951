package user

// User is a till operator account. Passwords are stored bcrypt-hashed.
type User struct {
	ID        int    `json:"userId"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}
