package model

// Roles an authenticated session can carry. Requests without a verified
// token never produce a Session at all.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is the resolved identity for one request. It is constructed from
// verified JWT claims at the HTTP boundary and passed explicitly into every
// service call that needs authorization — there is no ambient current-user
// state anywhere in the core.
type Session struct {
	UserID   string
	Username string
	Role     string
}

// CanMutate reports whether this session may create, update, or delete
// inventory records. Reads only require an authenticated session.
func (s Session) CanMutate() bool {
	return s.Role == RoleAdmin
}
