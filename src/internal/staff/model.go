package staff

// Member is an admin or gatekeeper account as the backend reports it.
type Member struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Directory groups staff the way the admin screen shows them: one table of
// admins, one of gatekeepers. Accounts with any other role are dropped.
type Directory struct {
	Admins      []Member `json:"admins"`
	Gatekeepers []Member `json:"gatekeepers"`
}
