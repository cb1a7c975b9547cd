package constants

// ContextKey is the type used for all context values set by this service.
// A dedicated type avoids collisions with other packages' context keys.
type ContextKey string

const (
	CtxKeyRequestID ContextKey = "request_id"
	CtxKeyUserID    ContextKey = "user_id"
	CtxKeyClientIP  ContextKey = "client_ip"
	CtxKeyUserAgent ContextKey = "user_agent"
	CtxKeyModule    ContextKey = "module"
	CtxKeyFunction  ContextKey = "function"
)

// GinKeyCurrentUser is the gin context key the auth middleware stores the
// authenticated user under.
const GinKeyCurrentUser = "current_user"
