package model

// Role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ValidRole reports whether r is one of the accepted conversation roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Turn is a single message in a conversation. Order of turns is
// chronological and significant.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
