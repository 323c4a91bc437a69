package domain

// Actor is the authenticated identity behind a request.
type Actor struct {
	UserID    int64
	Role      string
	Abilities []string // snapshot bound into the access token
	TokenID   int64
}

// Has reports whether the actor holds ability, honouring the "*" wildcard.
func (a *Actor) Has(ability string) bool {
	if a == nil {
		return false
	}
	for _, held := range a.Abilities {
		if held == ability || held == AbilityAll {
			return true
		}
	}
	return false
}

func (a *Actor) IsAdmin() bool {
	return a.Has(AbilityAdmin)
}

func (a *Actor) IsEmployer() bool {
	return a.Has(AbilityEmployer)
}

// IsSeeker is true for the least-privilege ability set (seekers and plain users).
func (a *Actor) IsSeeker() bool {
	if a == nil || a.IsAdmin() || a.Has(AbilityEmployer) || a.Has(AbilityMentor) {
		return false
	}
	return a.Has(AbilityUser)
}

// Owns reports whether the actor is the user identified by ownerID.
func (a *Actor) Owns(ownerID int64) bool {
	return a != nil && a.UserID != 0 && a.UserID == ownerID
}
