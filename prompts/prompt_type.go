// Package prompts provides prompt templates and the default prompt set
// used by the synthesis builders.
package prompts

// PromptType represents the type/category of a prompt.
type PromptType string

const (
	// PromptTypeQuestionAnswer answers a query over context.
	PromptTypeQuestionAnswer PromptType = "text_qa"
	// PromptTypeRefine updates an existing answer with new context.
	PromptTypeRefine PromptType = "refine"
	// PromptTypeSummary summarizes context.
	PromptTypeSummary PromptType = "summary"
	// PromptTypeTreeSummarize answers a query from grouped summaries.
	PromptTypeTreeSummarize PromptType = "tree_summarize"
	// PromptTypeSimpleInput passes the query through unchanged.
	PromptTypeSimpleInput PromptType = "simple_input"
	// PromptTypeTableQuery turns a query into code over a table.
	PromptTypeTableQuery PromptType = "table_query"
	// PromptTypeCustom is the fallback for caller-defined prompts.
	PromptTypeCustom PromptType = "custom"
)

// String returns the string representation of the prompt type.
func (pt PromptType) String() string {
	return string(pt)
}
