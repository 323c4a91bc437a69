package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/security"

	"golang.org/x/crypto/bcrypt"
)

const (
	tokenName = "auth-token"
	tokenType = "Bearer"
)

// AuthConfig holds the session policy.
type AuthConfig struct {
	SingleSession bool
	BcryptCost    int
}

type authUsecase struct {
	userRepo  domain.UserRepository
	roleRepo  domain.RoleRepository
	tokenRepo domain.TokenRepository
	throttle  domain.LoginThrottle
	secLog    *security.SecurityLogger
	cfg       AuthConfig
	now       func() time.Time

	// dummyHash is compared against when the e-mail is unknown so that a miss
	// costs the same as a wrong password. It uses the configured cost.
	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	tokenRepo domain.TokenRepository,
	throttle domain.LoginThrottle,
	secLog *security.SecurityLogger,
	cfg AuthConfig,
) domain.AuthUsecase {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokenRepo: tokenRepo,
		throttle:  throttle,
		secLog:    secLog,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	role, err := u.roleRepo.GetByID(ctx, in.RoleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Field("role_id", "The selected role is invalid.")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Administrators are appointed, never self-registered.
	if strings.EqualFold(role.Name, domain.RoleAdmin) {
		return nil, apperror.Field("role_id", "The selected role is invalid.")
	}

	email := strings.TrimSpace(in.Email)
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Field("email", "The email has already been taken.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cfg.BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       &role.ID,
		Role:         role.Name,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same address.
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Field("email", "The email has already been taken.")
		}
		return nil, apperror.Internal(err)
	}
	user.Role = role.Name

	issued, err := u.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	u.secLog.LogUserEvent(ctx, security.EventRegistered, strconv.FormatInt(user.ID, 10), map[string]interface{}{"role": role.Name})
	return u.result(user, issued), nil
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	key := strings.ToLower(strings.TrimSpace(in.Email)) + "|" + in.IP

	blocked, retryAfter, err := u.throttle.TooManyAttempts(ctx, key)
	if err != nil {
		// Fail open: an unavailable throttle store must not lock everyone out.
		u.throttleFailure(ctx, "too_many_attempts", err)
	}
	if blocked {
		u.secLog.LogLoginThrottled(ctx, in.Email, in.IP, in.RequestID, retryAfter)
		seconds := int(retryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		return nil, apperror.TooManyRequests("Too many attempts. Try again in " + strconv.Itoa(seconds) + " seconds.")
	}

	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(u.dummy(), []byte(in.Password))
		return nil, u.loginFailed(ctx, key, in)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, u.loginFailed(ctx, key, in)
	}

	if err := u.throttle.Clear(ctx, key); err != nil {
		u.throttleFailure(ctx, "clear", err)
	}

	issued, err := u.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	u.secLog.Log(ctx, security.SecurityEvent{
		Event:        security.EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: strconv.FormatInt(user.ID, 10),
		IP:           in.IP,
		UserAgent:    in.UserAgent,
		RequestID:    in.RequestID,
	})
	return u.result(user, issued), nil
}

func (u *authUsecase) dummy() []byte {
	u.dummyOnce.Do(func() {
		u.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), u.cfg.BcryptCost)
	})
	return u.dummyHash
}

func (u *authUsecase) loginFailed(ctx context.Context, key string, in domain.LoginInput) error {
	if _, err := u.throttle.Hit(ctx, key); err != nil {
		u.throttleFailure(ctx, "hit", err)
	}
	u.secLog.LogLoginFailed(ctx, in.Email, in.IP, in.UserAgent, in.RequestID)
	return apperror.Unauthorized("Invalid credentials.")
}

func (u *authUsecase) throttleFailure(ctx context.Context, op string, err error) {
	slog.WarnContext(ctx, "login throttle store unavailable", "op", op, "error", err)
	u.secLog.Log(ctx, security.SecurityEvent{
		Event:   security.EventThrottleFailure,
		Details: map[string]interface{}{"op": op, "error": err.Error()},
	})
}

// Issue stores a new token whose ability snapshot is taken from the role the
// repository reads under the user row lock, not from the possibly stale user
// passed in. Under single-session policy every other token of the user is
// deleted in the same transaction.
func (u *authUsecase) Issue(ctx context.Context, user *domain.User) (*domain.IssuedToken, error) {
	secret, err := auth.NewSecret()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	token := &domain.AccessToken{
		UserID:    user.ID,
		Name:      tokenName,
		TokenHash: auth.HashSecret(secret),
		CreatedAt: u.now().UTC(),
	}
	abilitiesFor := func(role string) []string {
		user.Role = role
		return domain.AbilitiesForRole(role)
	}

	if u.cfg.SingleSession {
		revoked, err := u.tokenRepo.ReplaceForUser(ctx, token, abilitiesFor)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if revoked > 0 {
			u.secLog.LogUserEvent(ctx, security.EventTokensRevoked, strconv.FormatInt(user.ID, 10), map[string]interface{}{
				"count": revoked, "reason": "single_session",
			})
		}
	} else if err := u.tokenRepo.Create(ctx, token, abilitiesFor); err != nil {
		return nil, apperror.Internal(err)
	}

	u.secLog.LogUserEvent(ctx, security.EventTokenIssued, strconv.FormatInt(user.ID, 10), map[string]interface{}{"token_id": token.ID})
	return &domain.IssuedToken{PlainText: auth.PlainText(token.ID, secret), Token: token}, nil
}

func (u *authUsecase) Resolve(ctx context.Context, presented string) (*domain.Session, error) {
	unauthenticated := apperror.Unauthorized("Unauthenticated.")

	id, secret, err := auth.Parse(presented)
	if err != nil {
		return nil, unauthenticated
	}

	var token *domain.AccessToken
	if id > 0 {
		token, err = u.tokenRepo.GetByID(ctx, id)
		if err == nil && !auth.Matches(secret, token.TokenHash) {
			return nil, unauthenticated
		}
	} else {
		token, err = u.tokenRepo.GetByHash(ctx, auth.HashSecret(secret))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, unauthenticated
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user, err := u.userRepo.GetByID(ctx, token.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, unauthenticated
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now().UTC()
	if err := u.tokenRepo.Touch(ctx, token.ID, now); err != nil {
		slog.WarnContext(ctx, "failed to record token use", "token_id", token.ID, "error", err)
	} else {
		token.LastUsedAt = &now
	}

	return &domain.Session{User: user, Token: token, Abilities: token.Abilities}, nil
}

func (u *authUsecase) RevokeCurrent(ctx context.Context, tokenID int64) error {
	if err := u.tokenRepo.Delete(ctx, tokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	u.secLog.Log(ctx, security.SecurityEvent{
		Event:   security.EventTokenRevoked,
		Details: map[string]interface{}{"token_id": tokenID},
	})
	return nil
}

func (u *authUsecase) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	n, err := u.tokenRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	u.secLog.LogUserEvent(ctx, security.EventTokensRevoked, strconv.FormatInt(userID, 10), map[string]interface{}{"count": n})
	return n, nil
}

// Me returns the user and the abilities of the presented token.
func (u *authUsecase) Me(ctx context.Context, actor *domain.Actor) (*domain.User, []string, error) {
	if actor == nil {
		return nil, nil, apperror.Unauthorized("Unauthenticated.")
	}
	user, err := u.userRepo.GetByID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, apperror.Unauthorized("Unauthenticated.")
	}
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	return user, actor.Abilities, nil
}

func (u *authUsecase) result(user *domain.User, issued *domain.IssuedToken) *domain.AuthResult {
	return &domain.AuthResult{
		User:      user,
		Abilities: issued.Token.Abilities,
		Token:     issued.PlainText,
		TokenType: tokenType,
	}
}
