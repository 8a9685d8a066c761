package domain

// Session is the resolved identity session. It transitions from not-ready to
// ready exactly once per application lifetime; a failed sign-in still yields
// a ready session with a locally generated placeholder identity.
type Session struct {
	IdentityID string `json:"identity_id"`
	Ready      bool   `json:"ready"`
}
