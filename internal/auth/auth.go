package auth

// Verify reports whether the identifier and secret exactly match an entry
// in the given credential map. The map is injected by the caller, there is
// no global credential state. This is a placeholder gate for the admin
// panel, not a security boundary: no hashing, no lockout, no sessions.
func Verify(credentials map[string]string, identifier, secret string) bool {
	s, ok := credentials[identifier]
	return ok && s == secret
}
