package usecase

import (
	"jobboard-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// DummyHashCost reports the bcrypt cost used for unknown-email comparisons.
func DummyHashCost(uc domain.AuthUsecase) (int, error) {
	return bcrypt.Cost(uc.(*authUsecase).dummy())
}
