package domain

import (
	"context"
	"encoding/json"
)

// CVBuilderInput is the raw material for a rendered CV.
type CVBuilderInput struct {
	Name       string         `json:"name" binding:"required,max=255"`
	Headline   *string        `json:"headline" binding:"omitempty,max=255"`
	Summary    *string        `json:"summary" binding:"omitempty,max=2000"`
	Experience []CVExperience `json:"experience" binding:"omitempty,dive"`
	Education  []CVEducation  `json:"education" binding:"omitempty,dive"`
	Skills     []string       `json:"skills" binding:"omitempty,dive,max=100"`
}

type CVExperience struct {
	Role    string  `json:"role" binding:"required,max=255"`
	Company string  `json:"company" binding:"required,max=255"`
	Period  string  `json:"period" binding:"required,max=255"`
	Details *string `json:"details" binding:"omitempty,max=2000"`
}

type CVEducation struct {
	School string  `json:"school" binding:"required,max=255"`
	Award  string  `json:"award" binding:"required,max=255"`
	Year   *string `json:"year" binding:"omitempty,max=50"`
}

// CVDocument is the section layout a client renders with Template.
type CVDocument struct {
	Template string     `json:"template"`
	Sections CVSections `json:"sections"`
}

type CVSections struct {
	Header     CVHeader              `json:"header"`
	Summary    string                `json:"summary"`
	Experience []CVExperienceSection `json:"experience"`
	Education  []CVEducation         `json:"education"`
	Skills     []string              `json:"skills"`
}

type CVHeader struct {
	Name     string  `json:"name"`
	Headline *string `json:"headline"`
}

type CVExperienceSection struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

// JobMatchInput recommends open jobs from explicit skills or, failing that,
// from words pulled out of a pasted resume.
type JobMatchInput struct {
	Skills     []string `json:"skills" binding:"omitempty,dive,max=100"`
	ResumeText *string  `json:"resume_text" binding:"omitempty,max=15000"`
	Limit      *int     `json:"limit" binding:"omitempty,min=1,max=50"`
}

type JobMatchResult struct {
	Keywords []string `json:"keywords"`
	Results  []Job    `json:"results"`
}

type SkillBuilderInput struct {
	TargetRole string   `json:"target_role" binding:"required,max=255"`
	MySkills   []string `json:"my_skills" binding:"omitempty,dive,max=100"`
}

type SkillSuggestion struct {
	Skill string   `json:"skill"`
	Ideas []string `json:"ideas"`
}

type SkillGapReport struct {
	TargetRole  string            `json:"target_role"`
	Have        []string          `json:"have"`
	Need        []string          `json:"need"`
	Suggestions []SkillSuggestion `json:"suggestions"`
}

// QuizSubmission carries the expected answer alongside each given one.
type QuizSubmission struct {
	Questions []QuizAnswer `json:"questions" binding:"required,min=1,dive"`
}

type QuizAnswer struct {
	ID      json.RawMessage `json:"id" binding:"required"`
	Answer  string          `json:"answer" binding:"required,max=1000"`
	Correct string          `json:"correct" binding:"required,max=1000"`
}

type QuizResult struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Percentage float64 `json:"percentage"`
	Feedback   string  `json:"feedback"`
}

type ToolsUsecase interface {
	BuildCV(in CVBuilderInput) *CVDocument
	MatchJobs(ctx context.Context, in JobMatchInput) (*JobMatchResult, error)
	SkillGaps(in SkillBuilderInput) *SkillGapReport
	GradeQuiz(in QuizSubmission) *QuizResult
}
