package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// In-memory repositories backing the usecase tests. Each guards its state
// with a mutex so concurrent tests model row locking.

// memUserRepo.mu plays the user row lock: token issue and role changes take
// it before the token store's own mutex.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
	roles  *memRoleRepo
	tokens *memTokenRepo
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]domain.User{}, roles: newMemRoleRepo()}
}

func (r *memUserRepo) add(name, email, role string) *domain.User {
	u := &domain.User{Name: name, Email: email, Role: role}
	_ = r.Create(context.Background(), u)
	return u
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, userID, roleID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	role, err := r.roles.GetByID(ctx, roleID)
	if err != nil {
		return 0, err
	}
	u.RoleID = &roleID
	u.Role = role.Name
	r.users[userID] = u

	if r.tokens == nil {
		return 0, nil
	}
	return r.tokens.DeleteByUserID(ctx, userID)
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memRoleRepo struct {
	mu    sync.Mutex
	roles []domain.Role
}

func newMemRoleRepo() *memRoleRepo {
	r := &memRoleRepo{}
	for _, name := range []string{domain.RoleAdmin, domain.RoleEmployer, domain.RoleSeeker, domain.RoleMentor, domain.RoleUser} {
		_ = r.Create(context.Background(), &domain.Role{Name: name})
	}
	return r
}

func (r *memRoleRepo) byName(name string) domain.Role {
	for _, role := range r.roles {
		if role.Name == name {
			return role
		}
	}
	panic("unknown role " + name)
}

func (r *memRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Role(nil), r.roles...), nil
}

func (r *memRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.ID == id {
			return &role, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return domain.ErrConflict
		}
	}
	role.ID = int64(len(r.roles) + 1)
	r.roles = append(r.roles, *role)
	return nil
}

type memTokenRepo struct {
	mu      sync.Mutex
	nextID  int64
	tokens  map[int64]domain.AccessToken
	touches int
	users   *memUserRepo
}

// newMemTokenRepo links the token store to users so issue reads the role
// under the user lock and role changes revoke tokens.
func newMemTokenRepo(users *memUserRepo) *memTokenRepo {
	r := &memTokenRepo{tokens: map[int64]domain.AccessToken{}, users: users}
	users.tokens = r
	return r
}

// lockedRole holds the user lock for the duration of fn.
func (r *memTokenRepo) lockedRole(userID int64, fn func(role string)) error {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	u, ok := r.users.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(u.Role)
	return nil
}

func (r *memTokenRepo) insert(token *domain.AccessToken) {
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.ID] = *token
}

func (r *memTokenRepo) countFor(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.AccessToken, abilitiesFor domain.AbilityFunc) error {
	return r.lockedRole(token.UserID, func(role string) {
		token.Abilities = abilitiesFor(role)
		r.insert(token)
	})
}

func (r *memTokenRepo) ReplaceForUser(_ context.Context, token *domain.AccessToken, abilitiesFor domain.AbilityFunc) (int64, error) {
	var revoked int64
	err := r.lockedRole(token.UserID, func(role string) {
		token.Abilities = abilitiesFor(role)
		for id, t := range r.tokens {
			if t.UserID == token.UserID {
				delete(r.tokens, id)
				revoked++
			}
		}
		r.insert(token)
	})
	return revoked, err
}

func (r *memTokenRepo) GetByID(_ context.Context, id int64) (*domain.AccessToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *memTokenRepo) GetByHash(_ context.Context, hash string) (*domain.AccessToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTokenRepo) Touch(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.LastUsedAt = &at
	r.tokens[id] = t
	r.touches++
	return nil
}

func (r *memTokenRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) DeleteByUserID(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

type memJobRepo struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]domain.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[int64]domain.Job{}}
}

func (r *memJobRepo) add(employerID int64, title, status string) *domain.Job {
	j := &domain.Job{EmployerID: employerID, Title: title, Description: "desc", Status: status, Tags: []string{}}
	_ = r.Create(context.Background(), j)
	return j
}

func (r *memJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	job.ID = r.nextID
	r.jobs[job.ID] = *job
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (r *memJobRepo) Fetch(_ context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Job
	for _, j := range r.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if len(filter.Keywords) > 0 && !matchesAny(j, filter.Keywords) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	total := int64(len(out))
	start := filter.Page.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Page.Limit()
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func matchesAny(j domain.Job, keywords []string) bool {
	haystack := strings.ToLower(j.Title + " " + j.Description + " " + strings.Join(j.Tags, " "))
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (r *memJobRepo) UpdateLocked(_ context.Context, id int64, fn func(job *domain.Job) error) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := fn(&j); err != nil {
		return nil, err
	}
	r.jobs[id] = j
	return &j, nil
}

func (r *memJobRepo) DeleteLocked(_ context.Context, id int64, fn func(job *domain.Job) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := fn(&j); err != nil {
		return err
	}
	delete(r.jobs, id)
	return nil
}

type memCompanyRepo struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: map[int64]domain.Company{}}
}

func (r *memCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.OwnerID != nil && company.OwnerID != nil && *c.OwnerID == *company.OwnerID {
			return domain.ErrConflict
		}
	}
	r.nextID++
	company.ID = r.nextID
	r.companies[company.ID] = *company
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memCompanyRepo) Fetch(_ context.Context, filter domain.CompanyFilter) ([]domain.Company, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memCompanyRepo) UpdateLocked(_ context.Context, id int64, fn func(company *domain.Company) error) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := fn(&c); err != nil {
		return nil, err
	}
	r.companies[id] = c
	return &c, nil
}

func (r *memCompanyRepo) DeleteLocked(_ context.Context, id int64, fn func(company *domain.Company) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := fn(&c); err != nil {
		return err
	}
	delete(r.companies, id)
	return nil
}

type appKey struct{ jobID, userID int64 }

// memApplicationRepo keys rows by (job, user), so a second insert for the
// same pair is impossible, like the unique constraint it stands in for.
type memApplicationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[appKey]domain.Application
	jobs   *memJobRepo
}

func newMemApplicationRepo(jobs *memJobRepo) *memApplicationRepo {
	return &memApplicationRepo{rows: map[appKey]domain.Application{}, jobs: jobs}
}

func (r *memApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *memApplicationRepo) Upsert(_ context.Context, jobID, userID int64, fn func(app *domain.Application, created bool) error) (*domain.Application, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := appKey{jobID, userID}
	app, exists := r.rows[key]
	if !exists {
		app = domain.Application{JobID: jobID, UserID: userID}
	}
	if err := fn(&app, !exists); err != nil {
		return nil, false, err
	}
	if !exists {
		r.nextID++
		app.ID = r.nextID
	}
	if job, err := r.jobs.GetByID(context.Background(), jobID); err == nil {
		app.JobEmployerID = job.EmployerID
	}
	r.rows[key] = app
	return &app, !exists, nil
}

func (r *memApplicationRepo) find(id int64) (appKey, domain.Application, bool) {
	for k, a := range r.rows {
		if a.ID == id {
			return k, a, true
		}
	}
	return appKey{}, domain.Application{}, false
}

func (r *memApplicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, a, ok := r.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *memApplicationRepo) list(match func(domain.Application) bool) []domain.Application {
	var out []domain.Application
	for _, a := range r.rows {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memApplicationRepo) ListByJob(_ context.Context, jobID int64, _ domain.Page) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.list(func(a domain.Application) bool { return a.JobID == jobID })
	return out, int64(len(out)), nil
}

func (r *memApplicationRepo) ListAllByJob(_ context.Context, jobID int64) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r *memApplicationRepo) ListByUser(_ context.Context, userID int64, _ domain.Page) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.list(func(a domain.Application) bool { return a.UserID == userID })
	return out, int64(len(out)), nil
}

func (r *memApplicationRepo) UpdateLocked(_ context.Context, id int64, fn func(app *domain.Application) error) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, a, ok := r.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := fn(&a); err != nil {
		return nil, err
	}
	r.rows[k] = a
	return &a, nil
}

func (r *memApplicationRepo) DeleteLocked(_ context.Context, id int64, fn func(app *domain.Application) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, a, ok := r.find(id)
	if !ok {
		return domain.ErrNotFound
	}
	if err := fn(&a); err != nil {
		return err
	}
	delete(r.rows, k)
	return nil
}

type memNotificationRepo struct {
	mu   sync.Mutex
	rows []domain.Notification
}

func (r *memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *n)
	return nil
}

func (r *memNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memNotificationRepo) ListUnread(_ context.Context, userID int64) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID && n.ReadAt == nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) ListRead(_ context.Context, userID int64, limit int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID && n.ReadAt != nil && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, userID int64, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			if r.rows[i].ReadAt == nil {
				r.rows[i].ReadAt = &at
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, userID int64, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.rows {
		if r.rows[i].UserID == userID && r.rows[i].ReadAt == nil {
			r.rows[i].ReadAt = &at
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) Delete(_ context.Context, userID int64, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockNotifier records employer notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewApplication(ctx context.Context, employer *domain.User, job *domain.Job, applicant *domain.User, coverLetter *string) error {
	return m.Called(ctx, employer, job, applicant, coverLetter).Error(0)
}

// MockThrottle stands in for the login tracker.
type MockThrottle struct {
	mock.Mock
}

func (m *MockThrottle) TooManyAttempts(ctx context.Context, key string) (bool, time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *MockThrottle) Hit(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockThrottle) Clear(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func actorOf(u *domain.User) *domain.Actor {
	return &domain.Actor{UserID: u.ID, Role: u.Role, Abilities: domain.AbilitiesForRole(u.Role)}
}

func strPtr(s string) *string { return &s }
