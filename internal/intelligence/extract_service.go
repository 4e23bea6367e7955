package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/alexanderramin/studycal/internal/llm"
	"github.com/alexanderramin/studycal/internal/normalizer"
)

// ErrNothingExtracted indicates the model found no lessons on the page.
var ErrNothingExtracted = errors.New("no course items found in page")

// Extraction is the outcome of reading a course page.
type Extraction struct {
	Course    string
	Items     []domain.RawItem
	Skipped   int // lessons dropped for a missing or zero duration
	Model     string
	LatencyMs int64
}

// CourseExtractService reads lesson lists out of saved course-page HTML.
type CourseExtractService interface {
	Extract(ctx context.Context, html string) (*Extraction, error)
}

type courseExtractService struct {
	client llm.LLMClient
}

// NewCourseExtractService creates a CourseExtractService backed by an LLM client.
func NewCourseExtractService(client llm.LLMClient) CourseExtractService {
	return &courseExtractService{client: client}
}

type extractedClass struct {
	Module   string `json:"module"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

type extractedCourse struct {
	Course  string           `json:"course"`
	Classes []extractedClass `json:"classes"`
}

func validateExtraction(c extractedCourse) error {
	for i, cl := range c.Classes {
		if strings.TrimSpace(cl.Title) == "" && strings.TrimSpace(cl.Module) == "" {
			return fmt.Errorf("classes[%d] has neither title nor module", i)
		}
	}
	return nil
}

func (s *courseExtractService) Extract(ctx context.Context, html string) (*Extraction, error) {
	cleaned := importer.CleanHTML(html)
	if cleaned == "" {
		return nil, ErrNothingExtracted
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   extractUserPromptPrefix + cleaned,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm course extraction failed: %w", err)
	}

	course, err := llm.ExtractJSON(resp.Text, validateExtraction)
	if err != nil {
		return nil, fmt.Errorf("failed to extract course JSON: %w", err)
	}

	out := &Extraction{
		Course:    strings.TrimSpace(course.Course),
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
	}
	for _, cl := range course.Classes {
		min, err := normalizer.ParseDuration(cl.Duration)
		if err != nil || min <= 0 {
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, domain.RawItem{
			Title:    joinModule(cl.Module, cl.Title),
			Duration: strings.TrimSpace(cl.Duration),
		})
	}

	if len(out.Items) == 0 {
		return nil, ErrNothingExtracted
	}
	return out, nil
}

func joinModule(module, title string) string {
	module, title = strings.TrimSpace(module), strings.TrimSpace(title)
	switch {
	case module == "":
		return title
	case title == "":
		return module
	}
	return module + ": " + title
}
