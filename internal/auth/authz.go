package auth

// RequireAuthenticated fails when the request carries no verified identity.
func RequireAuthenticated(identity *Identity) error {
	if identity == nil {
		return unauthenticated("authentication required")
	}
	return nil
}

// RequireRole fails when the request is anonymous or the identity's role is
// not in the allowed set. The authentication check runs first so an
// anonymous caller sees UNAUTHENTICATED, not FORBIDDEN.
func RequireRole(identity *Identity, allowed ...Role) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}

	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}

	return forbidden("insufficient permissions")
}
