package constants

// Cookie names for session transport. Tokens travel only in HttpOnly cookies,
// never in response bodies.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// MockGoogleIDToken is the sentinel ID token accepted in dev mode in place of
// a real Google token. It is never honored when dev mode is off.
const MockGoogleIDToken = "mock-google-id-token"
