//go:build integration

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/
package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := database.NewPostgresConnection(url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.Migrate(context.Background(), pool))
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, role string) int64 {
	t.Helper()
	var id int64
	email := fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano())
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password_hash, role_id)
		 VALUES ($1, $2, 'x', (SELECT id FROM roles WHERE name = $3)) RETURNING id`,
		role, email, role,
	).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func seedJob(t *testing.T, pool *pgxpool.Pool, employerID int64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO job_listings (employer_id, title, description) VALUES ($1, 'Go Developer', 'Build APIs') RETURNING id`,
		employerID,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestApplicationUpsert_ConcurrentFirstSubmissions(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	employer := seedUser(t, pool, "employer")
	seeker := seedUser(t, pool, "seeker")
	jobID := seedJob(t, pool, employer)
	repo := NewApplicationRepository(pool)

	const racers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[int64]struct{}{}
		start   = make(chan struct{})
	)
	for i := 0; i < racers; i++ {
		letter := fmt.Sprintf("attempt %d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			app, wasCreated, err := repo.Upsert(ctx, jobID, seeker, func(a *domain.Application, first bool) error {
				a.CoverLetter = &letter
				if first {
					a.Status = domain.ApplicationStatusPending
				}
				return nil
			})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[app.ID] = struct{}{}
			if wasCreated {
				created++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)

	var rows int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1 AND user_id = $2`, jobID, seeker,
	).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestUpdateRole_RevokesTokensAndLaterIssueSeesNewRole(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool, "employer")
	users := NewUserRepository(pool)
	tokens := NewTokenRepository(pool)

	before := &domain.AccessToken{UserID: userID, Name: "auth_token", TokenHash: fmt.Sprintf("a%d", time.Now().UnixNano()), CreatedAt: time.Now()}
	require.NoError(t, tokens.Create(ctx, before, domain.AbilitiesForRole))
	assert.Equal(t, domain.AbilitiesForRole("employer"), before.Abilities)

	var seekerRole int64
	require.NoError(t, pool.QueryRow(ctx, `SELECT id FROM roles WHERE name = 'seeker'`).Scan(&seekerRole))
	revoked, err := users.UpdateRole(ctx, userID, seekerRole)
	require.NoError(t, err)
	assert.Equal(t, int64(1), revoked)

	_, err = tokens.GetByID(ctx, before.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after := &domain.AccessToken{UserID: userID, Name: "auth_token", TokenHash: fmt.Sprintf("b%d", time.Now().UnixNano()), CreatedAt: time.Now()}
	_, err = tokens.ReplaceForUser(ctx, after, domain.AbilitiesForRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, after.Abilities)

	_, err = users.UpdateRole(ctx, -1, seekerRole)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
