package prompts

import (
	"strings"
)

// BasePromptTemplate is the interface for all prompt templates.
type BasePromptTemplate interface {
	// Format renders the template with the given variables. Doubled
	// braces in the template are undoubled exactly once on output.
	Format(vars map[string]string) string
	// GetTemplate returns the raw template string.
	GetTemplate() string
	// GetTemplateVars returns the placeholder names in the template.
	GetTemplateVars() []string
	// PartialFormat returns a new template with some variables pre-filled.
	PartialFormat(vars map[string]string) BasePromptTemplate
	// GetPromptType returns the prompt type.
	GetPromptType() PromptType
}

// PromptTemplate is a string template with {variable} placeholders.
// Literal braces in template content are stored doubled ({{ and }}) so
// they survive formatting unchanged.
type PromptTemplate struct {
	// Template is the template string.
	Template string
	// TemplateVars are the placeholder names extracted from the template.
	TemplateVars []string
	// PromptType is the type/category of this prompt.
	PromptType PromptType
	// PartialVars are pre-filled variables.
	PartialVars map[string]string
}

// NewPromptTemplate creates a new PromptTemplate.
func NewPromptTemplate(template string, promptType PromptType) *PromptTemplate {
	return &PromptTemplate{
		Template:     template,
		TemplateVars: GetTemplateVars(template),
		PromptType:   promptType,
		PartialVars:  make(map[string]string),
	}
}

// Format renders the template. Variables without a binding are left in
// place so the caller can spot them; substituted values are never
// re-scanned for placeholders.
func (pt *PromptTemplate) Format(vars map[string]string) string {
	allVars := make(map[string]string, len(pt.PartialVars)+len(vars))
	for k, v := range pt.PartialVars {
		allVars[k] = v
	}
	for k, v := range vars {
		allVars[k] = v
	}
	return FormatString(pt.Template, allVars)
}

// GetTemplate returns the raw template string.
func (pt *PromptTemplate) GetTemplate() string {
	return pt.Template
}

// GetTemplateVars returns the placeholder names in the template.
func (pt *PromptTemplate) GetTemplateVars() []string {
	return pt.TemplateVars
}

// PartialFormat returns a copy of the template with vars pre-filled.
func (pt *PromptTemplate) PartialFormat(vars map[string]string) BasePromptTemplate {
	partial := make(map[string]string, len(pt.PartialVars)+len(vars))
	for k, v := range pt.PartialVars {
		partial[k] = v
	}
	for k, v := range vars {
		partial[k] = v
	}
	return &PromptTemplate{
		Template:     pt.Template,
		TemplateVars: pt.TemplateVars,
		PromptType:   pt.PromptType,
		PartialVars:  partial,
	}
}

// GetPromptType returns the prompt type.
func (pt *PromptTemplate) GetPromptType() PromptType {
	return pt.PromptType
}

var _ BasePromptTemplate = (*PromptTemplate)(nil)

// FormatString renders a template in a single left-to-right pass:
// "{{" emits "{", "}}" emits "}", "{name}" emits the bound value.
// Unbound placeholders are left verbatim. Values are emitted as-is,
// never re-scanned, so brace characters in values round-trip.
func FormatString(template string, vars map[string]string) string {
	var out strings.Builder
	out.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			if name, end, ok := scanPlaceholder(template, i); ok {
				if value, bound := vars[name]; bound {
					out.WriteString(value)
				} else {
					out.WriteString(template[i:end])
				}
				i = end
				continue
			}
			out.WriteByte('{')
			i++
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			out.WriteByte('}')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// GetTemplateVars extracts placeholder names from a template, in order
// of first appearance, skipping doubled braces.
func GetTemplateVars(template string) []string {
	var vars []string
	seen := make(map[string]bool)

	for i := 0; i < len(template); {
		if template[i] != '{' {
			i++
			continue
		}
		if i+1 < len(template) && template[i+1] == '{' {
			i += 2
			continue
		}
		if name, end, ok := scanPlaceholder(template, i); ok {
			if !seen[name] {
				vars = append(vars, name)
				seen[name] = true
			}
			i = end
			continue
		}
		i++
	}
	return vars
}

// scanPlaceholder reads a {name} placeholder starting at the opening
// brace. Names are non-empty runs of word characters.
func scanPlaceholder(s string, start int) (name string, end int, ok bool) {
	i := start + 1
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	if i == start+1 || i >= len(s) || s[i] != '}' {
		return "", 0, false
	}
	return s[start+1 : i], i + 1, true
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// EscapeBraces doubles literal braces so text can be embedded in a
// template and survive a later Format call unchanged.
func EscapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}

// UnescapeBraces reverses EscapeBraces.
func UnescapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{{", "{")
	return strings.ReplaceAll(s, "}}", "}")
}
