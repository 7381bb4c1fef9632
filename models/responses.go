package models

// UserSummary is the public projection of a user returned by the signup,
// login, and profile endpoints.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// NotesPage is the response shape of the paginated notes listing.
type NotesPage struct {
	Notes      []Note `json:"notes"`
	TotalPages int    `json:"totalPages"`
}

// Message is a minimal JSON body used by endpoints that only need to confirm
// an action (e.g. logout).
type Message struct {
	Message string `json:"message"`
}
