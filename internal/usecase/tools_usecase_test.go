package usecase_test

import (
	"context"
	"errors"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepo struct {
	mock.Mock
	domain.JobRepository
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Get(1).(int64), args.Error(2)
}

func TestBuildCV(t *testing.T) {
	uc := usecase.NewToolsUsecase(newMemJobRepo())

	t.Run("splits details into bullets", func(t *testing.T) {
		doc := uc.BuildCV(domain.CVBuilderInput{
			Name:     "Ada",
			Headline: strPtr("Backend engineer"),
			Experience: []domain.CVExperience{{
				Role: "Engineer", Company: "Acme", Period: "2020-2024",
				Details: strPtr("Built the API\r\n\nCut latency by half\rMentored two juniors"),
			}},
			Skills: []string{"go"},
		})

		assert.Equal(t, "modern-compact", doc.Template)
		assert.Equal(t, "Ada", doc.Sections.Header.Name)
		assert.Equal(t, "Backend engineer", *doc.Sections.Header.Headline)
		require.Len(t, doc.Sections.Experience, 1)
		assert.Equal(t, "Engineer", doc.Sections.Experience[0].Title)
		assert.Equal(t, []string{"Built the API", "Cut latency by half", "Mentored two juniors"}, doc.Sections.Experience[0].Bullets)
		assert.Equal(t, []string{"go"}, doc.Sections.Skills)
	})

	t.Run("fills defaults", func(t *testing.T) {
		doc := uc.BuildCV(domain.CVBuilderInput{Name: "Ada"})
		assert.Equal(t, "Motivated professional seeking opportunities to deliver impact.", doc.Sections.Summary)
		assert.Nil(t, doc.Sections.Header.Headline)
		assert.NotNil(t, doc.Sections.Experience)
		assert.NotNil(t, doc.Sections.Education)
		assert.NotNil(t, doc.Sections.Skills)
	})
}

func TestMatchJobs(t *testing.T) {
	ctx := context.Background()
	jobs := newMemJobRepo()
	goJob := jobs.add(1, "Senior Go Developer", domain.JobStatusOpen)
	pyJob := jobs.add(1, "Data Engineer", domain.JobStatusOpen)
	_, err := jobs.UpdateLocked(ctx, pyJob.ID, func(j *domain.Job) error {
		j.Tags = []string{"python", "spark"}
		return nil
	})
	require.NoError(t, err)
	jobs.add(1, "Go Platform Lead", domain.JobStatusClosed)
	uc := usecase.NewToolsUsecase(jobs)

	t.Run("skills select open jobs by title or tags", func(t *testing.T) {
		res, err := uc.MatchJobs(ctx, domain.JobMatchInput{Skills: []string{"go", "python", "go"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "python"}, res.Keywords)
		require.Len(t, res.Results, 2)
		assert.Equal(t, pyJob.ID, res.Results[0].ID)
		assert.Equal(t, goJob.ID, res.Results[1].ID)
	})

	t.Run("resume text is tokenized when no skills are given", func(t *testing.T) {
		res, err := uc.MatchJobs(ctx, domain.JobMatchInput{ResumeText: strPtr("I write C# and Python, at scale; go to meetups.")})
		require.NoError(t, err)
		assert.Equal(t, []string{"write", "and", "python", "scale", "meetups."}, res.Keywords)
		require.Len(t, res.Results, 1)
		assert.Equal(t, pyJob.ID, res.Results[0].ID)
	})

	t.Run("limit caps results and no keywords lists newest open jobs", func(t *testing.T) {
		limit := 1
		res, err := uc.MatchJobs(ctx, domain.JobMatchInput{Limit: &limit})
		require.NoError(t, err)
		assert.Empty(t, res.Keywords)
		require.Len(t, res.Results, 1)
		assert.Equal(t, pyJob.ID, res.Results[0].ID)
	})
}

func TestMatchJobsKeywordCaps(t *testing.T) {
	repo := new(MockJobRepo)
	repo.On("Fetch", mock.Anything, mock.MatchedBy(func(f domain.JobFilter) bool {
		return f.Status == domain.JobStatusOpen && len(f.Keywords) == 10 && f.Page == domain.Page{Page: 1, PerPage: 10}
	})).Return([]domain.Job{}, int64(0), nil).Once()

	skills := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11", "a12"}
	res, err := usecase.NewToolsUsecase(repo).MatchJobs(context.Background(), domain.JobMatchInput{Skills: skills})
	require.NoError(t, err)
	assert.Equal(t, skills[:10], res.Keywords)
	repo.AssertExpectations(t)

	repo.On("Fetch", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("connection reset"))
	_, err = usecase.NewToolsUsecase(repo).MatchJobs(context.Background(), domain.JobMatchInput{})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestSkillGaps(t *testing.T) {
	uc := usecase.NewToolsUsecase(newMemJobRepo())

	report := uc.SkillGaps(domain.SkillBuilderInput{TargetRole: "Backend Engineer", MySkills: []string{"PHP", "MySQL"}})
	assert.Equal(t, "Backend Engineer", report.TargetRole)
	assert.Equal(t, []string{"php", "mysql"}, report.Have)
	assert.Equal(t, []string{"laravel", "rest", "testing"}, report.Need)
	require.Len(t, report.Suggestions, 3)
	assert.Equal(t, "laravel", report.Suggestions[0].Skill)
	assert.Contains(t, report.Suggestions[0].Ideas, "Build a tiny project featuring laravel.")

	unknown := uc.SkillGaps(domain.SkillBuilderInput{TargetRole: "Astronaut", MySkills: []string{"Git"}})
	assert.Equal(t, []string{"communication", "problem-solving"}, unknown.Need)
}

func TestGradeQuiz(t *testing.T) {
	uc := usecase.NewToolsUsecase(newMemJobRepo())

	partial := uc.GradeQuiz(domain.QuizSubmission{Questions: []domain.QuizAnswer{
		{Answer: " Goroutine ", Correct: "goroutine"},
		{Answer: "channel", Correct: "Channel"},
		{Answer: "mutex", Correct: "waitgroup"},
	}})
	assert.Equal(t, 3, partial.Total)
	assert.Equal(t, 2, partial.Correct)
	assert.Equal(t, 66.7, partial.Percentage)
	assert.Equal(t, "Review the topics and try again. You've got this!", partial.Feedback)

	perfect := uc.GradeQuiz(domain.QuizSubmission{Questions: []domain.QuizAnswer{{Answer: "a", Correct: "A"}}})
	assert.Equal(t, 100.0, perfect.Percentage)
	assert.Equal(t, "Great job! Keep going.", perfect.Feedback)
}
