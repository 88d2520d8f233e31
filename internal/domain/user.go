package domain

type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleStaff Role = "ROLE_STAFF"
	RoleUser  Role = "ROLE_USER"
)

// UserType is the audit-trail classification of an actor. Role priority is
// ADMIN > STAFF > USER; guests classify as GUEST and unresolvable actors as
// UNKNOWN.
type UserType string

const (
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeStaff   UserType = "STAFF"
	UserTypeUser    UserType = "USER"
	UserTypeGuest   UserType = "GUEST"
	UserTypeUnknown UserType = "UNKNOWN"
)

// ClassifyRoles maps a role set onto a UserType using the fixed priority
// order. An authenticated user with no recognized role is UNKNOWN.
func ClassifyRoles(roles []Role) UserType {
	classified := UserTypeUnknown
	for _, r := range roles {
		switch r {
		case RoleAdmin:
			return UserTypeAdmin
		case RoleStaff:
			classified = UserTypeStaff
		case RoleUser:
			if classified != UserTypeStaff {
				classified = UserTypeUser
			}
		}
	}
	return classified
}

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
