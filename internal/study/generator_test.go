package study_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/p-n-ai/studymate/internal/ai"
	"github.com/p-n-ai/studymate/internal/study"
)

const twoQuestions = "```json\n" + `[
  {"question": "What is the mean of 2, 4, 6?", "options": ["3", "4", "5", "6"], "answer": "4", "explanation": "Sum 12 divided by 3."},
  {"question": "Mean is also called?", "options": ["Average", "Mode"], "answer": "Average", "explanation": ""}
]` + "\n```"

func TestGenerate_MCQ_FencedJSON(t *testing.T) {
	mock := ai.NewMockProvider(twoQuestions)
	gen := study.NewGenerator(mock, "JKSSB Finance Account Assistant")

	res, err := gen.Generate(context.Background(), "Mean", study.KindMCQ)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Kind != study.KindMCQ {
		t.Errorf("Kind = %q, want mcq", res.Kind)
	}
	if len(res.Questions) != 2 {
		t.Fatalf("Questions = %d, want 2", len(res.Questions))
	}
	if res.Questions[0].Answer != "4" || len(res.Questions[0].Options) != 4 {
		t.Errorf("Questions[0] = %+v", res.Questions[0])
	}
	if res.Questions[1].Question != "Mean is also called?" {
		t.Errorf("Questions[1] = %+v", res.Questions[1])
	}

	req := mock.LastRequest()
	if req.Mode != ai.ModeJSON {
		t.Errorf("Mode = %v, want json", req.Mode)
	}
	if req.Schema == nil || req.Schema["type"] != "ARRAY" {
		t.Errorf("Schema = %v, want array schema", req.Schema)
	}
	if !strings.Contains(req.Prompt, "'Mean'") || !strings.Contains(req.Prompt, "JKSSB Finance Account Assistant") {
		t.Errorf("Prompt = %q, want topic and exam", req.Prompt)
	}
}

func TestGenerate_MCQ_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "Here are your questions: 1. ..."},
		{"object not array", `{"question": "q"}`},
		{"missing field", `[{"question": "q", "options": ["a"], "answer": "a"}]`},
		{"wrong type", `[{"question": "q", "options": "a,b", "answer": "a", "explanation": ""}]`},
		{"answer not an option", `[{"question": "q", "options": ["a", "b"], "answer": "c", "explanation": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := study.NewGenerator(ai.NewMockProvider(tt.text), "exam")
			_, err := gen.Generate(context.Background(), "Mean", study.KindMCQ)
			if !errors.Is(err, study.ErrParse) {
				t.Fatalf("Generate() error = %v, want ErrParse", err)
			}
			var genErr *study.GenerationError
			if !errors.As(err, &genErr) || genErr.Message == "" {
				t.Errorf("error should be a *GenerationError with a message, got %T", err)
			}
		})
	}
}

func TestGenerate_Resources_DedupesByURI(t *testing.T) {
	mock := &ai.MockProvider{Response: ai.GenerateResponse{
		Text: "Some resources.",
		Grounding: []ai.GroundingRef{
			{Title: "Mean (first)", URI: "https://stats.example/mean"},
			{Title: "Mean (second)", URI: "https://stats.example/mean"},
		},
	}}
	gen := study.NewGenerator(mock, "exam")

	res, err := gen.Generate(context.Background(), "Mean", study.KindResources)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Resources == nil {
		t.Fatal("Resources is nil")
	}
	if res.Resources.Summary != "Some resources." {
		t.Errorf("Summary = %q", res.Resources.Summary)
	}
	if len(res.Resources.Links) != 1 {
		t.Fatalf("Links = %v, want 1 entry", res.Resources.Links)
	}
	if res.Resources.Links[0].Title != "Mean (first)" {
		t.Errorf("Links[0].Title = %q, want first-seen title", res.Resources.Links[0].Title)
	}
	if mock.LastRequest().Mode != ai.ModeGrounded {
		t.Errorf("Mode = %v, want grounded", mock.LastRequest().Mode)
	}
}

func TestGenerate_Resources_OrderAndFallbacks(t *testing.T) {
	mock := &ai.MockProvider{Response: ai.GenerateResponse{
		Text: "summary",
		Grounding: []ai.GroundingRef{
			{Title: "B", URI: "https://b.example"},
			{Title: "no uri", URI: ""},
			{Title: "", URI: "https://a.example"},
			{Title: "B again", URI: "https://b.example"},
		},
	}}
	gen := study.NewGenerator(mock, "exam")

	res, err := gen.Generate(context.Background(), "Mean", study.KindResources)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []study.Link{
		{Title: "B", URI: "https://b.example"},
		{Title: "https://a.example", URI: "https://a.example"},
	}
	got := res.Resources.Links
	if len(got) != len(want) {
		t.Fatalf("Links = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Links[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGenerate_Resources_NoGrounding(t *testing.T) {
	gen := study.NewGenerator(ai.NewMockProvider("summary only"), "exam")

	res, err := gen.Generate(context.Background(), "Mean", study.KindResources)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Resources.Links == nil || len(res.Resources.Links) != 0 {
		t.Errorf("Links = %#v, want empty non-nil list", res.Resources.Links)
	}
}

func TestGenerate_TextKinds(t *testing.T) {
	for _, kind := range []study.Kind{study.KindNotes, study.KindSummary} {
		t.Run(string(kind), func(t *testing.T) {
			mock := ai.NewMockProvider("# Mean\nThe **average**.")
			gen := study.NewGenerator(mock, "exam")

			res, err := gen.Generate(context.Background(), "Mean", kind)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			text, ok := res.Markup()
			if !ok || text != "# Mean\nThe **average**." {
				t.Errorf("Markup() = %q, %v", text, ok)
			}
			if mock.LastRequest().Mode != ai.ModeText {
				t.Errorf("Mode = %v, want text", mock.LastRequest().Mode)
			}
		})
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	gen := study.NewGenerator(nil, "exam")

	_, err := gen.Generate(context.Background(), "Mean", study.KindNotes)
	if !errors.Is(err, study.ErrConfiguration) {
		t.Fatalf("Generate() error = %v, want ErrConfiguration", err)
	}
}

func TestGenerate_ServiceError(t *testing.T) {
	mock := ai.NewMockProvider("")
	mock.Err = errors.New("send request: connection refused")
	gen := study.NewGenerator(mock, "exam")

	_, err := gen.Generate(context.Background(), "Mean", study.KindNotes)
	if !errors.Is(err, study.ErrService) {
		t.Fatalf("Generate() error = %v, want ErrService", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message = %q, want cause included", err.Error())
	}
	if !errors.Is(err, mock.Err) {
		t.Error("GenerationError should unwrap to the transport error")
	}
	if mock.Calls() != 1 {
		t.Errorf("Calls() = %d, want a single attempt", mock.Calls())
	}
}

func TestGenerate_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		mock *ai.MockProvider
	}{
		{"empty text", ai.NewMockProvider("")},
		{"provider reports empty", &ai.MockProvider{Err: ai.ErrEmptyResponse}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := study.NewGenerator(tt.mock, "exam")
			_, err := gen.Generate(context.Background(), "Mean", study.KindSummary)
			if !errors.Is(err, study.ErrEmptyResponse) {
				t.Errorf("Generate() error = %v, want ErrEmptyResponse", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    study.Kind
		tracked bool
		wantErr bool
	}{
		{"notes", study.KindNotes, true, false},
		{"summary", study.KindSummary, true, false},
		{"mcq", study.KindMCQ, false, false},
		{"resources", study.KindResources, false, false},
		{"essay", "", false, true},
	}
	for _, tt := range tests {
		got, err := study.ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want || got.Tracked() != tt.tracked {
			t.Errorf("ParseKind(%q) = %q (tracked %v), want %q (tracked %v)", tt.in, got, got.Tracked(), tt.want, tt.tracked)
		}
	}
}

func TestGenerate_ServiceErrorOmitsKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	provider := ai.NewGoogleProvider("secret-key-123", ai.WithGoogleBaseURL(url))
	gen := study.NewGenerator(provider, "exam")

	_, err := gen.Generate(context.Background(), "Mean", study.KindNotes)
	if !errors.Is(err, study.ErrService) {
		t.Fatalf("Generate() error = %v, want ErrService", err)
	}
	if strings.Contains(err.Error(), "secret-key-123") {
		t.Errorf("message = %q, must not contain the API key", err.Error())
	}
}
