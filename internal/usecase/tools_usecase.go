package usecase

import (
	"context"
	"math"
	"regexp"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

const (
	cvTemplate       = "modern-compact"
	defaultCVSummary = "Motivated professional seeking opportunities to deliver impact."

	defaultMatchLimit = 10
	maxResumeTokens   = 15
	maxMatchKeywords  = 10
	minResumeTokenLen = 3

	quizPassRatio = 0.7
)

var (
	resumeSeparators = regexp.MustCompile(`[^a-z0-9+.#]+`)
	lineBreaks       = regexp.MustCompile(`\r\n|\r|\n`)
)

// skillsByRole lists the skills expected for well-known target roles.
var skillsByRole = map[string][]string{
	"backend engineer":  {"php", "laravel", "mysql", "rest", "testing"},
	"frontend engineer": {"html", "css", "javascript", "vue", "testing"},
	"data scientist":    {"python", "pandas", "numpy", "ml", "sql"},
}

var baselineSkills = []string{"communication", "problem-solving", "git"}

type toolsUsecase struct {
	jobRepo domain.JobRepository
}

func NewToolsUsecase(jobRepo domain.JobRepository) domain.ToolsUsecase {
	return &toolsUsecase{jobRepo: jobRepo}
}

func (uc *toolsUsecase) BuildCV(in domain.CVBuilderInput) *domain.CVDocument {
	summary := defaultCVSummary
	if in.Summary != nil && strings.TrimSpace(*in.Summary) != "" {
		summary = *in.Summary
	}

	experience := make([]domain.CVExperienceSection, 0, len(in.Experience))
	for _, e := range in.Experience {
		bullets := []string{}
		if e.Details != nil {
			for _, line := range lineBreaks.Split(*e.Details, -1) {
				if line = strings.TrimSpace(line); line != "" {
					bullets = append(bullets, line)
				}
			}
		}
		experience = append(experience, domain.CVExperienceSection{
			Title:   e.Role,
			Company: e.Company,
			Period:  e.Period,
			Bullets: bullets,
		})
	}

	education := in.Education
	if education == nil {
		education = []domain.CVEducation{}
	}
	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}

	return &domain.CVDocument{
		Template: cvTemplate,
		Sections: domain.CVSections{
			Header:     domain.CVHeader{Name: in.Name, Headline: in.Headline},
			Summary:    summary,
			Experience: experience,
			Education:  education,
			Skills:     skills,
		},
	}
}

// MatchJobs returns the newest open jobs mentioning any extracted keyword.
// With no keywords it returns the newest open jobs.
func (uc *toolsUsecase) MatchJobs(ctx context.Context, in domain.JobMatchInput) (*domain.JobMatchResult, error) {
	limit := defaultMatchLimit
	if in.Limit != nil {
		limit = *in.Limit
	}

	keywords := matchKeywords(in)
	jobs, _, err := uc.jobRepo.Fetch(ctx, domain.JobFilter{
		Status:   domain.JobStatusOpen,
		Keywords: keywords,
		Page:     domain.Page{Page: 1, PerPage: limit},
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return &domain.JobMatchResult{Keywords: keywords, Results: jobs}, nil
}

// matchKeywords prefers explicit skills; resume words are only used when no
// skill was given.
func matchKeywords(in domain.JobMatchInput) []string {
	candidates := in.Skills
	if len(candidates) == 0 && in.ResumeText != nil {
		for _, token := range resumeSeparators.Split(strings.ToLower(*in.ResumeText), -1) {
			if len(token) < minResumeTokenLen {
				continue
			}
			candidates = append(candidates, token)
			if len(candidates) == maxResumeTokens {
				break
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	keywords := []string{}
	for _, kw := range candidates {
		if _, dup := seen[kw]; dup || kw == "" {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == maxMatchKeywords {
			break
		}
	}
	return keywords
}

func (uc *toolsUsecase) SkillGaps(in domain.SkillBuilderInput) *domain.SkillGapReport {
	required, ok := skillsByRole[strings.ToLower(strings.TrimSpace(in.TargetRole))]
	if !ok {
		required = baselineSkills
	}

	have := make([]string, 0, len(in.MySkills))
	owned := make(map[string]struct{}, len(in.MySkills))
	for _, s := range in.MySkills {
		s = strings.ToLower(s)
		have = append(have, s)
		owned[s] = struct{}{}
	}

	need := []string{}
	suggestions := []domain.SkillSuggestion{}
	for _, skill := range required {
		if _, ok := owned[skill]; ok {
			continue
		}
		need = append(need, skill)
		suggestions = append(suggestions, domain.SkillSuggestion{
			Skill: skill,
			Ideas: []string{
				"Learn " + skill + " basics in 7-10 days.",
				"Build a tiny project featuring " + skill + ".",
				"Add a bullet point to resume once you ship it.",
			},
		})
	}

	return &domain.SkillGapReport{
		TargetRole:  in.TargetRole,
		Have:        have,
		Need:        need,
		Suggestions: suggestions,
	}
}

// GradeQuiz compares answers case-insensitively, ignoring surrounding space.
func (uc *toolsUsecase) GradeQuiz(in domain.QuizSubmission) *domain.QuizResult {
	total := len(in.Questions)
	correct := 0
	for _, q := range in.Questions {
		if strings.EqualFold(strings.TrimSpace(q.Answer), strings.TrimSpace(q.Correct)) {
			correct++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(correct)/float64(total)*1000) / 10
	}

	feedback := "Review the topics and try again. You've got this!"
	if float64(correct) >= float64(total)*quizPassRatio {
		feedback = "Great job! Keep going."
	}

	return &domain.QuizResult{
		Total:      total,
		Correct:    correct,
		Percentage: percentage,
		Feedback:   feedback,
	}
}
