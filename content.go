package dailypost

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziara/dailypost/llm"
)

// FallbackCategory marks content substituted after an unparseable response.
const FallbackCategory = "Error"

// ResultKind tells generated content apart from the fallback payload.
type ResultKind int

const (
	ResultGenerated ResultKind = iota
	ResultFallback
)

func (k ResultKind) String() string {
	if k == ResultFallback {
		return "fallback"
	}
	return "generated"
}

// Result is the outcome of one generation call.
type Result struct {
	Kind    ResultKind
	Content GeneratedContent
	// Raw is the response text after fence stripping and extraction.
	Raw string
	// ParseErr is set when Kind is ResultFallback.
	ParseErr error
}

// IsFallback reports whether the provider answer could not be used.
func (r Result) IsFallback() bool { return r.Kind == ResultFallback }

// FallbackContent is returned in place of an unparseable response.
func FallbackContent() GeneratedContent {
	return GeneratedContent{
		Title:    "Erro na Geração de Conteúdo",
		Lead:     "Houve um problema ao gerar o conteúdo. Tente novamente.",
		Body:     "<p>Não foi possível obter o conteúdo do LLM.</p>",
		Category: FallbackCategory,
	}
}

// ContentGenerator asks the provider for the day's article.
type ContentGenerator struct {
	client  llm.Client
	model   string
	prompts Prompts
	log     *zap.Logger
}

// NewContentGenerator creates a ContentGenerator.
func NewContentGenerator(client llm.Client, model string, prompts Prompts, log *zap.Logger) *ContentGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContentGenerator{client: client, model: model, prompts: prompts, log: log}
}

// Generate performs one chat completion and parses the answer. Provider
// errors are returned; an unparseable answer yields a fallback Result and no error.
func (g *ContentGenerator) Generate(ctx context.Context) (Result, error) {
	text, err := g.client.Complete(ctx, llm.Request{
		Model: g.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: g.prompts.System},
			{Role: llm.RoleUser, Content: g.prompts.User},
		},
		JSON: true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	res := ParseContent(text)
	if res.IsFallback() {
		g.log.Warn("unparseable provider response, using fallback content",
			zap.Error(res.ParseErr),
			zap.String("raw", res.Raw))
	} else {
		g.log.Debug("provider response", zap.String("raw", res.Raw))
	}
	return res, nil
}

// ParseContent extracts and decodes the JSON article from a raw response.
func ParseContent(text string) Result {
	raw := ExtractJSON(text)
	var c GeneratedContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Result{Kind: ResultFallback, Content: FallbackContent(), Raw: raw, ParseErr: err}
	}
	return Result{Kind: ResultGenerated, Content: c, Raw: raw}
}

// ExtractJSON strips code fences and returns the text between the first "{"
// and the last "}". Text without such a pair is returned trimmed.
func ExtractJSON(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}
	return s
}

// withDefaults fills fields the provider left empty.
func (c GeneratedContent) withDefaults(now time.Time) GeneratedContent {
	if c.Title == "" {
		c.Title = "Atualização do Mercado " + now.Format(DateLayout)
	}
	if c.Lead == "" {
		c.Lead = "Confira as últimas novidades do setor."
	}
	if c.Body == "" {
		c.Body = "<p>Nenhuma informação detalhada disponível.</p>"
	}
	if c.Category == "" {
		c.Category = "Notícias do Setor"
	}
	return c
}
