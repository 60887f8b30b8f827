package domain

// SessionState is the per-conversation record built once by the session
// bootstrap and round-tripped through the caller as opaque session
// attributes. Nil DefaultDuration or nil Zones means the corresponding
// read has not completed; domain logic must only ever see a Ready state.
type SessionState struct {
	SessionID       string `json:"sessionId"`
	UserID          UserID `json:"userId"`
	DefaultDuration *int   `json:"defaultDuration"`
	DefaultInterval *int   `json:"defaultInterval"`
	Zones           []Zone `json:"userZones"`
}

func (s SessionState) Ready() bool {
	return s.DefaultDuration != nil && s.Zones != nil
}
