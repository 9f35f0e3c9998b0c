package constant

// ContextSystem is the actor recorded on rows written by the service itself.
const ContextSystem = "system"

type contextKey string

// Request scoped values set by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const Empty = ""
