package models

// Session is the per-visitor state kept in the session store.
type Session struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	IPAddress       string `json:"ip_address"`
	UserAgent       string `json:"user_agent"`
	EmailAddress    string `json:"email_address"`
}

// NewSession starts an unauthenticated session for a client.
func NewSession(ipAddress, userAgent string) *Session {
	return &Session{
		IsAuthenticated: false,
		IPAddress:       ipAddress,
		UserAgent:       userAgent,
	}
}

// Clone returns a copy so observers cannot mutate the stored session.
func (s *Session) Clone() Session {
	if s == nil {
		return Session{}
	}
	return *s
}
