package authz

import (
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func actorFor(id int64, role string) *domain.Actor {
	return &domain.Actor{UserID: id, Role: role, Abilities: domain.AbilitiesForRole(role)}
}

func TestJobPolicy(t *testing.T) {
	gate := NewGate()
	owner := actorFor(1, domain.RoleEmployer)
	otherEmployer := actorFor(2, domain.RoleEmployer)
	admin := actorFor(3, domain.RoleAdmin)
	seeker := actorFor(4, domain.RoleSeeker)
	job := &domain.Job{ID: 10, EmployerID: owner.UserID}

	tests := []struct {
		name    string
		actor   *domain.Actor
		action  Action
		allowed bool
	}{
		{"anonymous can view", nil, ActionView, true},
		{"anonymous can list", nil, ActionList, true},
		{"employer can create", otherEmployer, ActionCreate, true},
		{"seeker cannot create", seeker, ActionCreate, false},
		{"owner can update", owner, ActionUpdate, true},
		{"non-owner employer cannot update", otherEmployer, ActionUpdate, false},
		{"non-owner employer cannot delete", otherEmployer, ActionDelete, false},
		{"admin can update any job", admin, ActionUpdate, true},
		{"admin can delete any job", admin, ActionDelete, true},
		{"seeker cannot update", seeker, ActionUpdate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := gate.Authorize(tt.actor, tt.action, JobTarget{Job: job})
			assert.Equal(t, tt.allowed, d.Allowed)
		})
	}
}

func TestUpdateOwnershipMatrix(t *testing.T) {
	gate := NewGate()
	roles := []string{domain.RoleAdmin, domain.RoleEmployer, domain.RoleSeeker, domain.RoleMentor, domain.RoleUser, "unknown"}
	for _, role := range roles {
		for actorID := int64(1); actorID <= 3; actorID++ {
			for employerID := int64(1); employerID <= 3; employerID++ {
				actor := actorFor(actorID, role)
				job := &domain.Job{EmployerID: employerID}
				want := role == domain.RoleAdmin || actorID == employerID
				got := gate.Authorize(actor, ActionUpdate, JobTarget{Job: job}).Allowed
				assert.Equal(t, want, got, "role=%s actor=%d employer=%d", role, actorID, employerID)
			}
		}
	}
}

func TestCompanyPolicy(t *testing.T) {
	gate := NewGate()
	ownerID := int64(5)
	company := &domain.Company{ID: 1, OwnerID: &ownerID}

	assert.True(t, gate.Authorize(nil, ActionView, CompanyTarget{Company: company}).Allowed)
	assert.True(t, gate.Authorize(actorFor(9, domain.RoleEmployer), ActionCreate, CompanyTarget{}).Allowed)
	assert.False(t, gate.Authorize(actorFor(9, domain.RoleMentor), ActionCreate, CompanyTarget{}).Allowed)
	assert.True(t, gate.Authorize(actorFor(ownerID, domain.RoleEmployer), ActionUpdate, CompanyTarget{Company: company}).Allowed)
	assert.False(t, gate.Authorize(actorFor(9, domain.RoleEmployer), ActionDelete, CompanyTarget{Company: company}).Allowed)
	assert.True(t, gate.Authorize(actorFor(9, domain.RoleAdmin), ActionDelete, CompanyTarget{Company: company}).Allowed)

	orphan := &domain.Company{ID: 2}
	assert.False(t, gate.Authorize(actorFor(9, domain.RoleEmployer), ActionUpdate, CompanyTarget{Company: orphan}).Allowed)
}

func TestApplicationPolicy(t *testing.T) {
	gate := NewGate()
	job := &domain.Job{ID: 1, EmployerID: 100}
	app := &domain.Application{ID: 7, JobID: job.ID, UserID: 200, JobEmployerID: job.EmployerID}

	t.Run("create is limited to seekers and admins", func(t *testing.T) {
		assert.True(t, gate.Authorize(actorFor(200, domain.RoleSeeker), ActionCreate, ApplicationTarget{Job: job}).Allowed)
		assert.True(t, gate.Authorize(actorFor(201, domain.RoleUser), ActionCreate, ApplicationTarget{Job: job}).Allowed)
		assert.True(t, gate.Authorize(actorFor(1, domain.RoleAdmin), ActionCreate, ApplicationTarget{Job: job}).Allowed)
		assert.False(t, gate.Authorize(actorFor(100, domain.RoleEmployer), ActionCreate, ApplicationTarget{Job: job}).Allowed)
		assert.False(t, gate.Authorize(actorFor(300, domain.RoleMentor), ActionCreate, ApplicationTarget{Job: job}).Allowed)
	})

	t.Run("listing for a job needs the job owner", func(t *testing.T) {
		assert.True(t, gate.Authorize(actorFor(100, domain.RoleEmployer), ActionViewApplications, ApplicationTarget{Job: job}).Allowed)
		assert.False(t, gate.Authorize(actorFor(101, domain.RoleEmployer), ActionViewApplications, ApplicationTarget{Job: job}).Allowed)
		assert.False(t, gate.Authorize(actorFor(200, domain.RoleSeeker), ActionViewApplications, ApplicationTarget{Job: job}).Allowed)
	})

	t.Run("delete needs the applicant", func(t *testing.T) {
		assert.True(t, gate.Authorize(actorFor(200, domain.RoleSeeker), ActionDelete, ApplicationTarget{Application: app}).Allowed)
		assert.False(t, gate.Authorize(actorFor(100, domain.RoleEmployer), ActionDelete, ApplicationTarget{Application: app}).Allowed)
		assert.True(t, gate.Authorize(actorFor(1, domain.RoleAdmin), ActionDelete, ApplicationTarget{Application: app}).Allowed)
	})

	t.Run("review needs the job owner", func(t *testing.T) {
		assert.True(t, gate.Authorize(actorFor(100, domain.RoleEmployer), ActionReview, ApplicationTarget{Application: app}).Allowed)
		assert.False(t, gate.Authorize(actorFor(200, domain.RoleSeeker), ActionReview, ApplicationTarget{Application: app}).Allowed)
	})
}

func TestMentorAndRolePolicy(t *testing.T) {
	gate := NewGate()
	assert.True(t, gate.Authorize(nil, ActionList, MentorTarget{}).Allowed)
	assert.False(t, gate.Authorize(actorFor(1, domain.RoleMentor), ActionUpdate, MentorTarget{}).Allowed)
	assert.True(t, gate.Authorize(actorFor(1, domain.RoleAdmin), ActionCreate, MentorTarget{}).Allowed)

	assert.False(t, gate.Authorize(actorFor(1, domain.RoleEmployer), ActionList, RoleTarget{}).Allowed)
	assert.True(t, gate.Authorize(actorFor(1, domain.RoleAdmin), ActionList, RoleTarget{}).Allowed)
}

func TestUserPolicy(t *testing.T) {
	gate := NewGate()
	assert.True(t, gate.Authorize(actorFor(1, domain.RoleSeeker), ActionUpdate, UserTarget{ID: 1}).Allowed)
	assert.False(t, gate.Authorize(actorFor(1, domain.RoleSeeker), ActionView, UserTarget{ID: 2}).Allowed)
	assert.False(t, gate.Authorize(actorFor(1, domain.RoleSeeker), ActionDelete, UserTarget{ID: 1}).Allowed)
	assert.True(t, gate.Authorize(actorFor(9, domain.RoleAdmin), ActionDelete, UserTarget{ID: 1}).Allowed)
}

func TestDecisionErrors(t *testing.T) {
	gate := NewGate()

	err := gate.Check(nil, ActionCreate, JobTarget{})
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	err = gate.Check(actorFor(2, domain.RoleEmployer), ActionUpdate, JobTarget{Job: &domain.Job{EmployerID: 1}})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	assert.NoError(t, gate.Check(nil, ActionView, JobTarget{}))
}
