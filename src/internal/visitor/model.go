package visitor

// Timestamp layouts stamped onto a check-in from the portal's local clock.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Visitor is a backend visitor log entry.
type Visitor struct {
	ID         string `json:"_id,omitempty"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	WhomToMeet string `json:"whomToMeet"`
	Phone      string `json:"phone"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// Form is a gatekeeper check-in as typed; date and time are stamped by the
// portal, not the gatekeeper.
type Form struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	WhomToMeet string `json:"whomToMeet" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// payload is the check-in shape the backend expects.
type payload struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	WhomToMeet string `json:"whomToMeet"`
	Phone      string `json:"phone"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}
