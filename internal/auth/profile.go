package auth

// Profile is the minimal user profile resolved from an OAuth provider.
// It contains facts only; reconciliation against local accounts happens
// in the handler layer.
type Profile struct {
	Email string
}
