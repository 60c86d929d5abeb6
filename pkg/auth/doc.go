// Package auth implements the two leaf pieces of the ReqWise auth core:
// password hashing and the access-token codec.
//
// Passwords are hashed with bcrypt. The hash string is self-describing
// (algorithm, cost and salt are embedded), so verification needs no state
// beyond the stored hash itself.
//
// Access tokens are stateless HS256 JWTs carrying a subject (the account
// email) and an expiry. Validity is determined entirely by signature and
// expiry at decode time; there is no server-side session table and no
// revocation. A token that fails signature verification is never partially
// trusted, and callers cannot distinguish an expired token from a forged
// one.
//
// Both halves are pure functions of their inputs plus the process-wide
// signing secret and clock, which are passed in explicitly so tests can
// pin them.
package auth
