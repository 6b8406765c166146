package prompts

// Default prompt templates for the synthesis builders.

const (
	DefaultTextQAPromptTmpl = `Context information is below.
---------------------
{context_str}
---------------------
Given the context information and not prior knowledge, answer the query.
Query: {query_str}
Answer: `

	DefaultRefinePromptTmpl = `The original query is as follows: {query_str}
We have provided an existing answer: {existing_answer}
We have the opportunity to refine the existing answer (only if needed) with some more context below.
------------
{context_msg}
------------
Given the new context, refine the original answer to better answer the query. If the context isn't useful, return the original answer.
Refined Answer: `

	DefaultTreeSummarizeTmpl = `Context information from multiple sources is below.
---------------------
{context_str}
---------------------
Given the information from multiple sources and not prior knowledge, answer the query.
Query: {query_str}
Answer: `

	DefaultSummaryPromptTmpl = `Write a summary of the following. Try to use only the information provided. Try to include as many key details as possible.

{context_str}

SUMMARY:`

	DefaultSimpleInputTmpl = `{query_str}`

	DefaultTableQueryTmpl = `You are working with a data table.
The first {head_rows} rows of the table are shown below:
---------------------
{table_str}
---------------------
{instruction_str}
Query: {query_str}

Expression: `
)

// Default prompt template instances.
var (
	DefaultTextQAPrompt        = NewPromptTemplate(DefaultTextQAPromptTmpl, PromptTypeQuestionAnswer)
	DefaultRefinePrompt        = NewPromptTemplate(DefaultRefinePromptTmpl, PromptTypeRefine)
	DefaultTreeSummarizePrompt = NewPromptTemplate(DefaultTreeSummarizeTmpl, PromptTypeTreeSummarize)
	DefaultSummaryPrompt       = NewPromptTemplate(DefaultSummaryPromptTmpl, PromptTypeSummary)
	DefaultSimpleInputPrompt   = NewPromptTemplate(DefaultSimpleInputTmpl, PromptTypeSimpleInput)
	DefaultTableQueryPrompt    = NewPromptTemplate(DefaultTableQueryTmpl, PromptTypeTableQuery)
)

// EmptyPromptText renders a template with every unfilled placeholder
// bound to the empty string, leaving partial variables in place. The
// result is what token accounting measures when reserving space for a
// prompt without its chunk content.
func EmptyPromptText(tmpl BasePromptTemplate) string {
	vars := make(map[string]string)
	for _, name := range tmpl.GetTemplateVars() {
		vars[name] = ""
	}
	// Partially-formatted variables keep their values.
	if pt, ok := tmpl.(*PromptTemplate); ok {
		for name := range pt.PartialVars {
			delete(vars, name)
		}
	}
	return tmpl.Format(vars)
}
