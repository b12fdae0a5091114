package namegen

import (
	"strings"

	"github.com/roguepikachu/namesmith/internal/domain"
)

// SystemPrompt is sent as the system message of every generation request.
const SystemPrompt = `You are a creative naming expert. Generate unique, memorable names that match the given requirements.

Rules for names:
- Never use numbers or bullet points in the output
- Each name must be unique and creative
- Provide a clear, concise description for each name
- Format each response exactly as: NameHere: Description of the name here
- Put each name-description pair on its own line
- Descriptions should explain why the name fits the requirements`

const formatReminder = "IMPORTANT: Do not include any numbers, bullet points, or prefixes in the output. Start directly with the name."

// PromptOptions tunes how filters are rendered.
type PromptOptions struct {
	// OmitEmptyFilters skips filter lines whose value is empty instead of
	// sending a bare label.
	OmitEmptyFilters bool
}

// BuildPrompt renders the requirement list for query and filters.
func BuildPrompt(query string, filters domain.FilterSelection, opts PromptOptions) string {
	var b strings.Builder
	b.WriteString("Generate 5 unique names based on these requirements:\n")
	b.WriteString("- Keywords: " + query + "\n")
	for _, f := range []struct {
		label string
		value domain.FilterValue
	}{
		{"Purpose", filters.Purpose},
		{"Style", filters.Style},
		{"Length", filters.Length},
		{"Language", filters.Language},
	} {
		if opts.OmitEmptyFilters && f.value.IsEmpty() {
			continue
		}
		b.WriteString("- " + f.label + ": " + f.value.Effective() + "\n")
	}
	if reqs := filters.Requirements(); len(reqs) > 0 {
		list := make([]string, len(reqs))
		for i, r := range reqs {
			list[i] = string(r)
		}
		b.WriteString("- Special Requirements: " + strings.Join(list, ", "))
	}
	return b.String()
}

// userMessage appends the output-format reminder to a built prompt.
func userMessage(prompt string) string {
	return prompt + "\n\n" + formatReminder
}
