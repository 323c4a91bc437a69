package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	gate        *authz.Gate
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, gate *authz.Gate) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo, gate: gate}
}

// CreateCompany registers the actor's company. Each user owns at most one.
func (u *companyUsecase) CreateCompany(ctx context.Context, actor *domain.Actor, company *domain.Company) error {
	if err := u.gate.Check(actor, authz.ActionCreate, authz.CompanyTarget{}); err != nil {
		return err
	}
	company.Name = strings.TrimSpace(company.Name)
	if company.Name == "" {
		return apperror.Field("name", "The name field is required.")
	}
	ownerID := actor.UserID
	company.OwnerID = &ownerID

	if err := u.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("You already have a company.")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Company not found")
	}
	return company, nil
}

func (u *companyUsecase) ListCompanies(ctx context.Context, filter domain.CompanyFilter) (*domain.PaginatedResult[domain.Company], error) {
	filter.Page = domain.NewPage(filter.Page.Page, filter.Page.PerPage)
	companies, total, err := u.companyRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(companies, total, filter.Page), nil
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, actor *domain.Actor, id int64, update domain.CompanyUpdate) (*domain.Company, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	if update.Name.Set && (update.Name.Value == nil || strings.TrimSpace(*update.Name.Value) == "") {
		return nil, apperror.Field("name", "The name field is required.")
	}

	company, err := u.companyRepo.UpdateLocked(ctx, id, func(company *domain.Company) error {
		if err := u.gate.Check(actor, authz.ActionUpdate, authz.CompanyTarget{Company: company}); err != nil {
			return err
		}
		update.Apply(company)
		return nil
	})
	if err != nil {
		return nil, repoErr(err, "Company not found")
	}
	return company, nil
}

func (u *companyUsecase) DeleteCompany(ctx context.Context, actor *domain.Actor, id int64) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	err := u.companyRepo.DeleteLocked(ctx, id, func(company *domain.Company) error {
		return u.gate.Check(actor, authz.ActionDelete, authz.CompanyTarget{Company: company})
	})
	return repoErr(err, "Company not found")
}
