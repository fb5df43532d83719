package models

import "time"

// ActivityMessage is published to RabbitMQ for every notable portal action.
type ActivityMessage struct {
	SessionID   string            `json:"session_id,omitempty"`
	Email       string            `json:"email,omitempty"`
	Role        string            `json:"role,omitempty"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	IPAddress   string            `json:"ip_address,omitempty"`
	UserAgent   string            `json:"user_agent,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionForcedLogout   = "forced_logout"
	ActionSignup         = "signup"
	ActionVisitorCheckIn = "visitor_check_in"
)

// Service name constants
const (
	ServicePortalAuth       = "portal.auth"
	ServicePortalGatekeeper = "portal.gatekeeper.visitors"
)
