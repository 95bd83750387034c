package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"inboxpilot/internal/errs"
	"inboxpilot/internal/llm"
	"inboxpilot/internal/models"
	"inboxpilot/internal/utils"
)

// maxPromptContentLength bounds how much message body is quoted in the
// generation prompt
const maxPromptContentLength = 2000

// ObjectGenerator is the structured-generation surface the resolver needs
// from the LLM gateway
type ObjectGenerator interface {
	ChatCompletionObject(ctx context.Context, req llm.ObjectRequest) (*llm.ObjectResult, error)
}

// Resolver turns a matched rule's action templates into executable items.
// Literal fields are copied through; AI marker fields are filled by a
// single structured completion covering every marker across the rule.
type Resolver struct {
	generator ObjectGenerator
	logger    zerolog.Logger
}

// NewResolver creates a new argument resolver
func NewResolver(generator ObjectGenerator, logger zerolog.Logger) *Resolver {
	return &Resolver{generator: generator, logger: logger}
}

// aiField is one marker field awaiting generation, bound to its slot in
// the resolved items
type aiField struct {
	key         string
	instruction string
	target      *string
}

// Resolve produces executable ActionItems for the rule. It issues zero LLM
// calls when no field carries an AI marker, and exactly one call per rule
// otherwise. On any generation or validation failure no items are returned.
func (r *Resolver) Resolve(ctx context.Context, user *models.User, rule *models.Rule, email models.EmailContext) ([]models.ActionItem, error) {
	items := make([]models.ActionItem, len(rule.Actions))
	var fields []aiField

	for i := range rule.Actions {
		action := &rule.Actions[i]
		items[i].Type = action.Type
		bindField(&fields, i, "label", action.Label, &items[i].Label)
		bindField(&fields, i, "subject", action.Subject, &items[i].Subject)
		bindField(&fields, i, "content", action.Content, &items[i].Content)
		bindField(&fields, i, "to", action.To, &items[i].To)
		bindField(&fields, i, "cc", action.Cc, &items[i].Cc)
		bindField(&fields, i, "bcc", action.Bcc, &items[i].Bcc)
	}

	if len(fields) == 0 {
		return items, nil
	}

	result, err := r.generator.ChatCompletionObject(ctx, llm.ObjectRequest{
		User:      user.AIFields(),
		UserEmail: user.Email,
		System:    buildSystem(user, email),
		Prompt:    buildPrompt(rule, email, fields),
		Schema:    buildSchema(fields),
		Label:     "resolve-rule-args",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrResolution, err)
	}

	var generated map[string]string
	if err := json.Unmarshal(result.Object, &generated); err != nil {
		return nil, fmt.Errorf("%w: failed to decode generated arguments: %w", errs.ErrResolution, err)
	}

	for _, field := range fields {
		value, ok := generated[field.key]
		if !ok {
			return nil, fmt.Errorf("%w: generated arguments missing field %q", errs.ErrResolution, field.key)
		}
		*field.target = value
	}

	r.logger.Debug().Str("rule_id", rule.ID).Int("generated_fields", len(fields)).
		Msg("Resolved AI action arguments")
	return items, nil
}

// bindField copies a literal template value through, or registers the
// field for AI generation when the template is a marker
func bindField(fields *[]aiField, index int, name string, tmpl, target *string) {
	if models.IsAIMarker(tmpl) {
		*fields = append(*fields, aiField{
			key:         fmt.Sprintf("action_%d_%s", index+1, name),
			instruction: models.AIInstruction(tmpl),
			target:      target,
		})
		return
	}
	if tmpl != nil {
		*target = *tmpl
	}
}

func buildSchema(fields []aiField) llm.Schema {
	properties := make(map[string]llm.SchemaProperty, len(fields))
	required := make([]string, 0, len(fields))
	for _, field := range fields {
		properties[field.key] = llm.SchemaProperty{
			Type:        "string",
			Description: field.instruction,
		}
		required = append(required, field.key)
	}
	return llm.Schema{
		Name:        "email_action_arguments",
		Description: "Argument values for the email actions about to be executed",
		Properties:  properties,
		Required:    required,
	}
}

func buildSystem(user *models.User, email models.EmailContext) string {
	var b strings.Builder
	b.WriteString("You are an email assistant generating argument values for automated email actions. ")
	b.WriteString("Generate each requested field exactly as it should be used, with no surrounding commentary.")
	if user.About != "" {
		b.WriteString("\n\nAbout the user: ")
		b.WriteString(user.About)
	}
	b.WriteString("\n\n")
	b.WriteString(utils.ReplyLanguageInstruction(utils.DetectLanguage(email.Content)))
	return b.String()
}

func buildPrompt(rule *models.Rule, email models.EmailContext, fields []aiField) string {
	content := email.Content
	if len(content) > maxPromptContentLength {
		content = content[:maxPromptContentLength]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The rule %q matched this email:\n\n", rule.Name)
	fmt.Fprintf(&b, "From: %s\n", email.From)
	fmt.Fprintf(&b, "To: %s\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "Body:\n%s\n\n", content)
	b.WriteString("Generate the following fields:\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "- %s: %s\n", field.key, field.instruction)
	}
	return b.String()
}
