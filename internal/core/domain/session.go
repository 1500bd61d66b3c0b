package domain

// A Session is the ephemeral, process-local admin session. Only a boolean
// flag is ever persisted, independent of any server-verified credential:
// this is a faithful port of a known design weakness, not a security
// boundary.
type Session struct {
	IsAdmin    bool
	RememberMe bool
}
