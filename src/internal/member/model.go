package member

// MaxCars is the parking allotment per member; the check runs in the portal,
// before any backend call.
const MaxCars = 4

// Member is a backend member record. The portal never stores these; they are
// view models passed through from the backend.
type Member struct {
	ID       string   `json:"_id,omitempty"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
	MemberID string   `json:"memberId"`
	Cars     []string `json:"cars"`
}

// Form is the member form as typed: cars arrive as one comma-separated
// string and are split before the backend sees them.
type Form struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	MemberID string `json:"memberId" binding:"required"`
	Cars     string `json:"cars" binding:"required"`
}

// payload is the member shape the backend expects on create/update.
type payload struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
	MemberID string   `json:"memberId"`
	Cars     []string `json:"cars"`
}
