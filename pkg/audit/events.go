package audit

import "fmt"

// LoginEvent records an authentication attempt against the token endpoint.
type LoginEvent struct {
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e LoginEvent) MessageID() string {
	return "login"
}

func (e LoginEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Email)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e LoginEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e LoginEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LoginEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result,
		},
	}
}

// RegisterEvent records a new account registration.
type RegisterEvent struct {
	Email        string
	Username     string
	Role         string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s registered as %s", e.Email, e.Role)
	}
	msg := fmt.Sprintf("%s failed to register", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
			"role": e.Role,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    result,
		},
	}
}

// CheckEvent records an authorization decision on a resource.
type CheckEvent struct {
	UserEmail string
	ClientIP  string
	Resource  string
	Privilege string
	Allowed   bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked permission %s on %s: allowed", e.UserEmail, e.Privilege, e.Resource)
	}
	return fmt.Sprintf("%s checked permission %s on %s: denied", e.UserEmail, e.Privilege, e.Resource)
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserEmail,
		},
		SDIDSubject: {
			"resource":  e.Resource,
			"privilege": e.Privilege,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
		},
	}
}

// ResourceEvent records a write to a project or requirement.
type ResourceEvent struct {
	UserEmail    string
	ClientIP     string
	Resource     string
	Operation    string // "create", "update", "delete"
	Success      bool
	ErrorMessage string
}

func (e ResourceEvent) MessageID() string {
	return "resource"
}

func (e ResourceEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd %s", e.UserEmail, e.Operation, e.Resource)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.UserEmail, e.Operation, e.Resource)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ResourceEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ResourceEvent) Facility() int {
	return FacilityAuth
}

func (e ResourceEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserEmail,
		},
		SDIDSubject: {
			"resource": e.Resource,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result,
		},
	}
}
