package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/chnbi/termbridge/internal/core/common"
	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/llm"
	"github.com/chnbi/termbridge/internal/logger"
)

const defaultPromptBody = `You are a professional translator. Translate the source text from %s into %s and %s.
Respect the glossary exactly when a term appears in the source.`

// Request carries one text to translate plus the project's language pair.
type Request struct {
	Text        string       `json:"text"`
	SourceLang  string       `json:"source_lang"`
	TargetLangA string       `json:"target_lang_a"`
	TargetLangB string       `json:"target_lang_b"`
	Glossary    []model.Term `json:"-"`
	// TemplateBody overrides the built-in instruction block when set.
	TemplateBody string `json:"-"`
}

// Translator is a thin wrapper over the LLM client: it renders the prompt,
// calls the model, and parses the structured reply. No retries here; retry
// policy belongs to the HTTP client underneath the provider SDK.
type Translator struct {
	llm llm.Client
	log *logger.Logger
}

func NewTranslator(client llm.Client, log *logger.Logger) *Translator {
	return &Translator{
		llm: client,
		log: log.With("component", "translator"),
	}
}

// BuildPrompt renders the instruction block, the approved glossary for the
// language pair, and the response contract.
func BuildPrompt(req Request) string {
	var b strings.Builder

	if req.TemplateBody != "" {
		b.WriteString(req.TemplateBody)
	} else {
		fmt.Fprintf(&b, defaultPromptBody, req.SourceLang, req.TargetLangA, req.TargetLangB)
	}
	b.WriteString("\n\n")

	if len(req.Glossary) > 0 {
		b.WriteString("Glossary (source = first target / second target):\n")
		for _, term := range req.Glossary {
			fmt.Fprintf(&b, "- %s = %s / %s\n", term.Source, term.TargetA, term.TargetB)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Source text:\n%s\n\n", req.Text)
	b.WriteString(`Return a JSON object with keys "target_a" and "target_b" holding the two translations.
Example: {"target_a": "...", "target_b": "..."}`)

	return b.String()
}

func (t *Translator) Translate(ctx context.Context, req Request) (*model.TranslationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("empty source text")
	}

	response, err := t.llm.Generate(ctx, BuildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate translation: %w", err)
	}

	result, err := common.ParseJSON[model.TranslationResult](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse translation: %w", err)
	}
	return &result, nil
}
