package models

// Community is a tenant grouping of members. Communities are created by
// administrative tooling and are immutable from the API's perspective.
type Community struct {
	// ID is the synthetic integer identifier assigned by the store.
	ID int64 `json:"id"`

	// Name is the display name of the community.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the community was created.
	CreatedAt int64 `json:"created_at"`
}

// Member is a user belonging to exactly one community for its lifetime.
type Member struct {
	ID          int64 `json:"id"`
	CommunityID int64 `json:"community_id"`

	// Name is the member's display name.
	Name string `json:"name"`

	// Username is unique across the whole system and used for login.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the member's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// ContributionPercentage is the default weighting (0-100) applied to
	// this member's income when a record does not specify its own value.
	ContributionPercentage int `json:"contribution_percentage"`

	CreatedAt int64 `json:"created_at"`
}
