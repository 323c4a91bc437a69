// Package authz holds the resource-aware authorization rules. Every mutating
// handler path asks the Gate before touching storage.
package authz

import (
	"fmt"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type Action string

const (
	ActionView             Action = "view"
	ActionList             Action = "list"
	ActionCreate           Action = "create"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionViewApplications Action = "view_applications"
	ActionReview           Action = "review"
)

// Target is the resource (or resource class) an action is checked against.
// Update and delete paths must pass the loaded instance so ownership can be
// compared.
type Target interface {
	kind() string
}

type JobTarget struct{ Job *domain.Job }
type CompanyTarget struct{ Company *domain.Company }

// ApplicationTarget carries the application (nil for create) and the job it
// belongs to, needed for owner-of-job checks.
type ApplicationTarget struct {
	Application *domain.Application
	Job         *domain.Job
}

type MentorTarget struct{ Mentor *domain.Mentor }
type RoleTarget struct{}

// UserTarget is a user account; ID is the subject user.
type UserTarget struct{ ID int64 }

func (JobTarget) kind() string         { return "job" }
func (CompanyTarget) kind() string     { return "company" }
func (ApplicationTarget) kind() string { return "application" }
func (MentorTarget) kind() string      { return "mentor" }
func (RoleTarget) kind() string        { return "role" }
func (UserTarget) kind() string        { return "user" }

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	// Authenticated is false when the action needs an identity and none was given.
	Authenticated bool
	Reason        string
}

func allow() Decision { return Decision{Allowed: true, Authenticated: true} }

func deny(reason string) Decision {
	return Decision{Authenticated: true, Reason: reason}
}

var unauthenticated = Decision{Reason: "Unauthenticated."}

// Err converts a denial into the error returned to the caller.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case !d.Authenticated:
		return apperror.Unauthorized("Unauthenticated.")
	default:
		return apperror.Forbidden(d.Reason)
	}
}

// Gate evaluates the role/ownership matrix. It is stateless.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// Authorize decides whether actor may perform action on target. actor may be
// nil for public actions.
func (g *Gate) Authorize(actor *domain.Actor, action Action, target Target) Decision {
	switch t := target.(type) {
	case JobTarget:
		return g.job(actor, action, t)
	case CompanyTarget:
		return g.company(actor, action, t)
	case ApplicationTarget:
		return g.application(actor, action, t)
	case MentorTarget:
		return g.mentor(actor, action)
	case RoleTarget:
		return g.role(actor)
	case UserTarget:
		return g.user(actor, action, t)
	}
	return deny(fmt.Sprintf("unknown resource %T", target))
}

// Check is Authorize followed by Decision.Err.
func (g *Gate) Check(actor *domain.Actor, action Action, target Target) error {
	return g.Authorize(actor, action, target).Err()
}

func (g *Gate) job(actor *domain.Actor, action Action, t JobTarget) Decision {
	switch action {
	case ActionView, ActionList:
		return allow()
	}
	if actor == nil {
		return unauthenticated
	}
	switch action {
	case ActionCreate:
		if actor.IsAdmin() || actor.IsEmployer() {
			return allow()
		}
		return deny("Only employers can post jobs")
	case ActionUpdate, ActionDelete, ActionViewApplications:
		if actor.IsAdmin() || (t.Job != nil && actor.Owns(t.Job.EmployerID)) {
			return allow()
		}
		return deny("You do not own this job")
	}
	return deny("Action not permitted")
}

func (g *Gate) company(actor *domain.Actor, action Action, t CompanyTarget) Decision {
	switch action {
	case ActionView, ActionList:
		return allow()
	}
	if actor == nil {
		return unauthenticated
	}
	switch action {
	case ActionCreate:
		if actor.IsAdmin() || actor.IsEmployer() {
			return allow()
		}
		return deny("Only employers can create companies")
	case ActionUpdate, ActionDelete:
		if actor.IsAdmin() || (t.Company != nil && t.Company.OwnerID != nil && actor.Owns(*t.Company.OwnerID)) {
			return allow()
		}
		return deny("You do not own this company")
	}
	return deny("Action not permitted")
}

func (g *Gate) application(actor *domain.Actor, action Action, t ApplicationTarget) Decision {
	if actor == nil {
		return unauthenticated
	}
	if actor.IsAdmin() {
		return allow()
	}
	switch action {
	case ActionCreate:
		if actor.IsSeeker() {
			return allow()
		}
		return deny("Only job seekers can apply")
	case ActionList, ActionViewApplications:
		if t.Job != nil && actor.Owns(t.Job.EmployerID) {
			return allow()
		}
		return deny("You do not own this job")
	case ActionView:
		if t.Application == nil {
			return deny("Action not permitted")
		}
		if actor.Owns(t.Application.UserID) || actor.Owns(t.Application.JobEmployerID) {
			return allow()
		}
		return deny("You cannot view this application")
	case ActionReview:
		if t.Application != nil && actor.Owns(t.Application.JobEmployerID) {
			return allow()
		}
		return deny("You do not own this job")
	case ActionDelete:
		if t.Application != nil && actor.Owns(t.Application.UserID) {
			return allow()
		}
		return deny("You cannot delete this application")
	}
	return deny("Action not permitted")
}

func (g *Gate) mentor(actor *domain.Actor, action Action) Decision {
	switch action {
	case ActionView, ActionList:
		return allow()
	}
	return adminOnly(actor)
}

func (g *Gate) role(actor *domain.Actor) Decision {
	return adminOnly(actor)
}

func (g *Gate) user(actor *domain.Actor, action Action, t UserTarget) Decision {
	if actor == nil {
		return unauthenticated
	}
	switch action {
	case ActionView, ActionUpdate:
		if actor.IsAdmin() || actor.Owns(t.ID) {
			return allow()
		}
		return deny("You can only access your own account")
	}
	return adminOnly(actor)
}

func adminOnly(actor *domain.Actor) Decision {
	if actor == nil {
		return unauthenticated
	}
	if actor.IsAdmin() {
		return allow()
	}
	return deny("Admin access required")
}
