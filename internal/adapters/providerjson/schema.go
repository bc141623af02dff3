package providerjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"focusly/internal/application"
	"focusly/internal/domain"
)

var validate = validator.New()

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// rawNode is one roadmap node as the model returns it
type rawNode struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Type            string   `json:"type" validate:"oneof=signal noise"`
	DifficultyLevel *int     `json:"difficulty_level" validate:"required,gte=0,lte=100"`
	LearningOutcome string   `json:"learning_outcome" validate:"required"`
	SearchQueries   []string `json:"search_queries" validate:"required,dive,required"`
	Resources       []string `json:"resources" validate:"required,dive,required"`
}

type rawRoadmap struct {
	Nodes []rawNode `json:"nodes"`
}

type rawPlayground struct {
	Type        string `json:"type" validate:"oneof=code spreadsheet none"`
	InitialData string `json:"initialData"`
	Prompt      string `json:"prompt"`
}

// rawContent is the deep content document as the model returns it
type rawContent struct {
	ExecutiveSummary   string         `json:"executiveSummary" validate:"required"`
	TechnicalMechanics []string       `json:"technicalMechanics" validate:"min=1,dive,required"`
	MinuteDetails      []string       `json:"minuteDetails" validate:"min=1,dive,required"`
	ExpertMentalModel  string         `json:"expertMentalModel" validate:"required"`
	CommonPitfalls     []string       `json:"commonPitfalls" validate:"min=1,dive,required"`
	ELI7               string         `json:"eli7" validate:"required"`
	Playground         *rawPlayground `json:"playground,omitempty"`
}

// ExtractJSON pulls the first JSON document out of free-form model output.
// It accepts fenced code blocks and surrounding prose.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if matches := codeBlockRe.FindStringSubmatch(text); len(matches) > 1 {
		text = strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", errors.New("no JSON document found in response")
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end <= start {
		return "", errors.New("no JSON document found in response")
	}
	return text[start : end+1], nil
}

// ParseRoadmap converts model output into descriptors. Every entry must
// carry all seven fields; one invalid entry fails the whole response as a
// provider failure. A response with no entries is an empty result.
// Accepts {"nodes": [...]} or a bare array.
func ParseRoadmap(text string) ([]domain.NodeDescriptor, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrProviderFailure, err)
	}

	var raw rawRoadmap
	if strings.HasPrefix(doc, "[") {
		err = json.Unmarshal([]byte(doc), &raw.Nodes)
	} else {
		err = json.Unmarshal([]byte(doc), &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse roadmap JSON: %v", application.ErrProviderFailure, err)
	}
	if len(raw.Nodes) == 0 {
		return nil, application.ErrEmptyResult
	}

	out := make([]domain.NodeDescriptor, 0, len(raw.Nodes))
	for i, n := range raw.Nodes {
		n.Type = strings.ToLower(strings.TrimSpace(n.Type))
		if err := validate.Struct(n); err != nil {
			return nil, fmt.Errorf("%w: invalid node %d: %s", application.ErrProviderFailure, i, describe(err))
		}
		out = append(out, domain.NodeDescriptor{
			Title:           strings.TrimSpace(n.Title),
			Description:     n.Description,
			Type:            domain.NodeType(n.Type),
			DifficultyLevel: *n.DifficultyLevel,
			LearningOutcome: n.LearningOutcome,
			SearchQueries:   nonNil(n.SearchQueries),
			Resources:       nonNil(n.Resources),
		})
	}
	return out, nil
}

// ParseContent converts model output into deep content, all or nothing
func ParseContent(text string) (*domain.DeepContent, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrProviderFailure, err)
	}
	if strings.HasPrefix(doc, "[") {
		return nil, fmt.Errorf("%w: expected a JSON object for content", application.ErrProviderFailure)
	}

	var raw rawContent
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse content JSON: %v", application.ErrProviderFailure, err)
	}
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: invalid content: %s", application.ErrProviderFailure, describe(err))
	}

	content := &domain.DeepContent{
		ExecutiveSummary:   raw.ExecutiveSummary,
		TechnicalMechanics: raw.TechnicalMechanics,
		MinuteDetails:      raw.MinuteDetails,
		ExpertMentalModel:  raw.ExpertMentalModel,
		CommonPitfalls:     raw.CommonPitfalls,
		ELI7:               raw.ELI7,
	}
	if p := raw.Playground; p != nil && p.Type != "none" {
		content.Playground = &domain.Playground{
			Type:        domain.PlaygroundType(p.Type),
			InitialData: p.InitialData,
			Prompt:      p.Prompt,
		}
	}
	return content, nil
}

// describe formats validator errors into one readable line
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "gte", "lte":
			parts = append(parts, fmt.Sprintf("%s is out of range", field))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must not be empty", field))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
