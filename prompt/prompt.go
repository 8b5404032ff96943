package prompt

import "strings"

// Instructions is the fixed part of the comparison prompt. The two bill
// texts are appended after it by Build.
const Instructions = `Role: Senior Legislative Analyst for a University Government Relations Office.
Task: Write a concise (about 100 - 250 words, no more than 1500 characters) comparative summary of the changes between the two provided bill versions.

Guidelines:
1.  Identify Bill Versions: Look at the top of the provided text to identify the specific bill numbers (e.g., "SB 119", "SB 119 CD1"). Use these specific names in your summary. If names are not found, use "the original bill" and "the amended version".
2.  Single Paragraph: Output the entire summary as a single cohesive paragraph. Do not split into multiple paragraphs.
3.  Focus on "Primary Differences": Start immediately by stating the main differences (e.g., "The primary differences between [Bill A] and [Bill B] lie in...").
4.  Be Specific with Numbers: Explicitly compare funding amounts, fiscal years, and dates.
5.  Structure vs. Content: Note changes in organization (e.g., "consolidates funding") as well as content.
6.  Plain Language: Use simple, clear language. Avoid formal or complex words like "predominantly", "itemized", "pursuant to". Use everyday words instead (e.g., "mainly", "listed", "under").
7.  Concise & Direct: Professional, objective tone. No filler.
8.  No Hallucinations: Do not introduce any new facts, numbers, dates, or claims not present in the two provided bill texts. Rely only on the two bill texts as sources of truth.
9.  Strictly output plain text only: Do not use any markdown formatting. No bolding (**text**), no italics (*text*), no headers (#), no bullet points. Write in standard paragraph form only.
10. Standard Grammar: Use standard English grammar and capitalization. Do not uppercase words like "OR", "AND", or "NOT" for emphasis.

Example Style:
The primary differences between the original SB 119 and the final version, SB 119 CD1 (passed as Act 265), lie in the appropriation structure and the total funding amount for the second fiscal year. While both versions allocate $250,000 for fiscal year 2025-2026, the final CD1 version reduces the appropriation for fiscal year 2026-2027 from the originally proposed $430,000 to $350,000. Additionally, the original bill separated funding into specific line items for prerequisites, personnel, and supplies across multiple sections, whereas the final enacted version consolidates all funding into a single section with lump sums authorized for all program purposes.
`

const (
	FirstBillHeader  = "First Bill Text:"
	SecondBillHeader = "Second Bill Text:"
)

// Build renders the comparison prompt. Both texts are embedded verbatim.
func Build(bill1, bill2 string) string {
	var b strings.Builder
	b.Grow(len(Instructions) + len(bill1) + len(bill2) + 64)
	b.WriteString(Instructions)
	b.WriteString("\n")
	b.WriteString(FirstBillHeader)
	b.WriteString("\n")
	b.WriteString(bill1)
	b.WriteString("\n\n")
	b.WriteString(SecondBillHeader)
	b.WriteString("\n")
	b.WriteString(bill2)
	b.WriteString("\n")
	return b.String()
}
