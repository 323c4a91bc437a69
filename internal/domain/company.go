package domain

import (
	"context"
	"time"
)

// Company is owned by exactly one user; owner_id is unique.
type Company struct {
	ID          int64     `json:"id"`
	OwnerID     *int64    `json:"owner_id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	Location    *string   `json:"location"`
	Industry    *string   `json:"industry"`
	Size        *string   `json:"size"`
	Description *string   `json:"description"`
	LogoPath    *string   `json:"logo_path"`
	LogoURL     *string   `json:"logo_url"`
	LinkedinURL *string   `json:"linkedin_url"`
	TwitterURL  *string   `json:"twitter_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID owns the company.
func (c *Company) OwnedBy(userID int64) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

type CompanyUpdate struct {
	Name        Optional[string] `json:"name"`
	Website     Optional[string] `json:"website"`
	Location    Optional[string] `json:"location"`
	Industry    Optional[string] `json:"industry"`
	Size        Optional[string] `json:"size"`
	Description Optional[string] `json:"description"`
	LogoPath    Optional[string] `json:"logo_path"`
	LogoURL     Optional[string] `json:"logo_url"`
	LinkedinURL Optional[string] `json:"linkedin_url"`
	TwitterURL  Optional[string] `json:"twitter_url"`
}

func (u CompanyUpdate) Apply(c *Company) {
	if u.Name.Set && u.Name.Value != nil {
		c.Name = *u.Name.Value
	}
	u.Website.ApplyTo(&c.Website)
	u.Location.ApplyTo(&c.Location)
	u.Industry.ApplyTo(&c.Industry)
	u.Size.ApplyTo(&c.Size)
	u.Description.ApplyTo(&c.Description)
	u.LogoPath.ApplyTo(&c.LogoPath)
	u.LogoURL.ApplyTo(&c.LogoURL)
	u.LinkedinURL.ApplyTo(&c.LinkedinURL)
	u.TwitterURL.ApplyTo(&c.TwitterURL)
}

type CompanyFilter struct {
	Query    string
	Location string
	Industry string
	Size     string
	Page     Page
}

type CompanyRepository interface {
	// Create returns a conflict error when the owner already has a company.
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	Fetch(ctx context.Context, filter CompanyFilter) ([]Company, int64, error)
	UpdateLocked(ctx context.Context, id int64, fn func(company *Company) error) (*Company, error)
	DeleteLocked(ctx context.Context, id int64, fn func(company *Company) error) error
}

type CompanyUsecase interface {
	CreateCompany(ctx context.Context, actor *Actor, company *Company) error
	GetCompany(ctx context.Context, id int64) (*Company, error)
	ListCompanies(ctx context.Context, filter CompanyFilter) (*PaginatedResult[Company], error)
	UpdateCompany(ctx context.Context, actor *Actor, id int64, update CompanyUpdate) (*Company, error)
	DeleteCompany(ctx context.Context, actor *Actor, id int64) error
}
