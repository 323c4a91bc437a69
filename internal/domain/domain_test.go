package domain_test

import (
	"encoding/json"
	"testing"

	"jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbilitiesForRole(t *testing.T) {
	assert.Equal(t, []string{"admin", "manage-users", "manage-jobs", "manage-mentors", "manage-companies", "*"}, domain.AbilitiesForRole("Admin"))
	assert.Equal(t, []string{"employer", "post-jobs", "view-applications"}, domain.AbilitiesForRole("EMPLOYER"))
	assert.Equal(t, []string{"mentor", "view-mentees", "post-content"}, domain.AbilitiesForRole("mentor"))

	for _, role := range []string{"seeker", "user", "", "superuser"} {
		assert.Equal(t, []string{"user"}, domain.AbilitiesForRole(role), role)
	}

	t.Run("fresh slice per call", func(t *testing.T) {
		a := domain.AbilitiesForRole("employer")
		a[0] = "tampered"
		assert.Equal(t, "employer", domain.AbilitiesForRole("employer")[0])
	})
}

func TestActorHas(t *testing.T) {
	admin := &domain.Actor{UserID: 1, Abilities: domain.AbilitiesForRole("admin")}
	assert.True(t, admin.Has("anything-at-all"))
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSeeker())

	seeker := &domain.Actor{UserID: 2, Abilities: domain.AbilitiesForRole("seeker")}
	assert.True(t, seeker.IsSeeker())
	assert.False(t, seeker.Has(domain.AbilityPostJobs))
	assert.True(t, seeker.Owns(2))
	assert.False(t, seeker.Owns(0))

	var nobody *domain.Actor
	assert.False(t, nobody.Has(domain.AbilityUser))
}

func TestOptionalDistinguishesOmittedFromNull(t *testing.T) {
	var fields domain.ApplicationFields
	require.NoError(t, json.Unmarshal([]byte(`{"cover_letter": null, "resume_url": "https://cv.example.com"}`), &fields))

	assert.True(t, fields.CoverLetter.Set)
	assert.Nil(t, fields.CoverLetter.Value)
	assert.True(t, fields.ResumeURL.Set)
	assert.Equal(t, "https://cv.example.com", *fields.ResumeURL.Value)
	assert.False(t, fields.ResumePath.Set)

	keep := "kept"
	app := &domain.Application{CoverLetter: &keep, ResumePath: &keep}
	fields.Merge(app)
	assert.Nil(t, app.CoverLetter)
	assert.Equal(t, "kept", *app.ResumePath)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, domain.Page{Page: 1, PerPage: domain.DefaultPerPage}, domain.NewPage(0, 0))
	assert.Equal(t, domain.Page{Page: 3, PerPage: domain.MaxPerPage}, domain.NewPage(3, 1000))

	p := domain.NewPage(3, 10)
	assert.Equal(t, 20, p.Offset())

	res := domain.NewPaginatedResult[int](nil, 21, p)
	assert.Equal(t, 3, res.TotalPages)
	assert.NotNil(t, res.Data)
}
