package domain

// AccountDraft is the account-creation step of the signup funnel. It is
// written once by the upstream step and read once when the profile is
// submitted.
type AccountDraft struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ProfileInput is what the profile step of signup collects besides facets.
type ProfileInput struct {
	UserType         UserType `json:"userType"`
	DateOfBirth      string   `json:"dateOfBirth"`
	Hometown         Hometown `json:"hometown"`
	BusinessLocation string   `json:"businessLocation,omitempty"`
	IsVeteran        bool     `json:"isVeteran"`
	IsActiveDuty     bool     `json:"isActiveDuty"`
	TravelsWithKids  bool     `json:"travelsWithKids"`
	// Pending holds custom free-text the user typed but never added; it is
	// folded into the selection on submit.
	Pending map[Category]string `json:"pending,omitempty"`
}

// Registration is the finished payload handed to the account subsystem.
// Facets holds every non-empty category, canonical and custom values merged.
type Registration struct {
	UserType         UserType              `json:"userType"`
	Email            string                `json:"email"`
	Username         string                `json:"username"`
	Name             string                `json:"name"`
	Password         string                `json:"password"`
	DateOfBirth      Date                  `json:"dateOfBirth"`
	Hometown         Hometown              `json:"hometown"`
	BusinessLocation string                `json:"businessLocation,omitempty"`
	Facets           map[Category][]string `json:"facets"`
	IsVeteran        bool                  `json:"isVeteran"`
	IsActiveDuty     bool                  `json:"isActiveDuty"`
	TravelsWithKids  bool                  `json:"travelsWithKids"`
}

// RegisteredUser is the account record returned by the account subsystem.
type RegisteredUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	UserType UserType `json:"userType"`
}

// RegistrationResult is the account subsystem's successful response.
type RegistrationResult struct {
	User  RegisteredUser `json:"user"`
	Token string         `json:"token"`
}

// Candidate is one user record returned by the directory search endpoint.
// Ranking is the directory's concern; candidates arrive already ordered.
type Candidate struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name,omitempty"`
	UserType   UserType `json:"userType"`
	Location   string   `json:"location"`
	Age        int      `json:"age,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Languages  []string `json:"languages,omitempty"`
}
