package usecase

import (
	"context"
	"strings"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type mentorUsecase struct {
	mentorRepo domain.MentorRepository
	gate       *authz.Gate
}

func NewMentorUsecase(mentorRepo domain.MentorRepository, gate *authz.Gate) domain.MentorUsecase {
	return &mentorUsecase{mentorRepo: mentorRepo, gate: gate}
}

func (u *mentorUsecase) ListMentors(ctx context.Context, query string, page domain.Page) (*domain.PaginatedResult[domain.Mentor], error) {
	page = domain.NewPage(page.Page, page.PerPage)
	mentors, total, err := u.mentorRepo.Fetch(ctx, strings.TrimSpace(query), page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(mentors, total, page), nil
}

func (u *mentorUsecase) GetMentor(ctx context.Context, id int64) (*domain.Mentor, error) {
	mentor, err := u.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Mentor not found")
	}
	return mentor, nil
}

func (u *mentorUsecase) CreateMentor(ctx context.Context, actor *domain.Actor, mentor *domain.Mentor) error {
	if err := u.gate.Check(actor, authz.ActionCreate, authz.MentorTarget{}); err != nil {
		return err
	}
	mentor.Name = strings.TrimSpace(mentor.Name)
	if mentor.Name == "" {
		return apperror.Field("name", "The name field is required.")
	}
	return repoErr(u.mentorRepo.Create(ctx, mentor), "User not found")
}

func (u *mentorUsecase) UpdateMentor(ctx context.Context, actor *domain.Actor, id int64, update domain.MentorUpdate) (*domain.Mentor, error) {
	if err := u.gate.Check(actor, authz.ActionUpdate, authz.MentorTarget{}); err != nil {
		return nil, err
	}
	if update.Name.Set && (update.Name.Value == nil || strings.TrimSpace(*update.Name.Value) == "") {
		return nil, apperror.Field("name", "The name field is required.")
	}
	mentor, err := u.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Mentor not found")
	}
	update.Apply(mentor)
	if err := u.mentorRepo.Update(ctx, mentor); err != nil {
		return nil, repoErr(err, "Mentor not found")
	}
	return mentor, nil
}

func (u *mentorUsecase) DeleteMentor(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := u.gate.Check(actor, authz.ActionDelete, authz.MentorTarget{}); err != nil {
		return err
	}
	return repoErr(u.mentorRepo.Delete(ctx, id), "Mentor not found")
}
