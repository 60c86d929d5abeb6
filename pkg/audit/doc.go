// Package audit provides audit logging for security-relevant operations.
//
// Events cover authentication attempts, account registration,
// authorization checks, and writes to projects and requirements. They
// are emitted in RFC5424 syslog format and optionally persisted to a
// dedicated Postgres database when AUDIT_DATABASE_URL is set.
//
// # Usage
//
//	audit.Log(audit.LoginEvent{Email: email, ClientIP: ip, Success: true})
package audit
