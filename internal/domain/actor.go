package domain

// ActorKind distinguishes who is performing an operation. Every mutating
// call carries one of these three so the audit trail never guesses.
type ActorKind string

const (
	ActorKindSystem        ActorKind = "system"
	ActorKindGuest         ActorKind = "guest"
	ActorKindAuthenticated ActorKind = "authenticated"
)

type Actor struct {
	Kind     ActorKind
	UserID   int32
	Username string
	Roles    []Role
}

// SystemActor represents background jobs and operator tooling.
func SystemActor() Actor {
	return Actor{Kind: ActorKindSystem, Username: "system"}
}

// GuestActor represents an unauthenticated caller.
func GuestActor() Actor {
	return Actor{Kind: ActorKindGuest}
}

func AuthenticatedActor(userID int32, username string, roles []Role) Actor {
	return Actor{
		Kind:     ActorKindAuthenticated,
		UserID:   userID,
		Username: username,
		Roles:    roles,
	}
}

// UserType classifies the actor for audit attribution.
func (a Actor) UserType() UserType {
	switch a.Kind {
	case ActorKindGuest:
		return UserTypeGuest
	case ActorKindAuthenticated:
		return ClassifyRoles(a.Roles)
	default:
		return UserTypeUnknown
	}
}

func (a Actor) IsStaff() bool {
	for _, r := range a.Roles {
		if r == RoleStaff || r == RoleAdmin {
			return true
		}
	}
	return false
}
