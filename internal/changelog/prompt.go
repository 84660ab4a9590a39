package changelog

import (
	"fmt"
	"strings"

	"github.com/masmgr/changelog-gen/internal/git"
)

const promptDateLayout = "2006-01-02 15:04:05 -0700"

// PromptInput carries everything the prompt is built from.
type PromptInput struct {
	Commits         []git.Commit
	DefaultSections []string // section headers used when Custom is empty
	Custom          []string // user-supplied section names, replacing the defaults
	Groups          []Group  // grouping hints, labelled with default sections
	ShortHashLength int
}

// BuildPrompt renders the instruction text sent to the text-generation
// service. Custom section names replace the default ones, and the grouping
// hints are then left out since they name default sections.
func BuildPrompt(in PromptInput) string {
	headers := "Categorize changes under headers like " + quoteHeaders(in.DefaultSections)
	groups := in.Groups
	if len(in.Custom) > 0 {
		headers = "Categorize changes under exactly these headers: " + quoteHeaders(in.Custom)
		groups = nil
	}

	var b strings.Builder

	b.WriteString("Based on the following git commit history, generate a user-friendly changelog in markdown format.\n")
	b.WriteString("The output should ONLY contain the markdown content, with no additional text or explanations.\n\n")

	b.WriteString("Requirements:\n")
	requirements := []string{
		"Use proper markdown formatting with headers (##), lists (-), and code blocks where appropriate",
		headers,
		"Group related commits together under single bullet points",
		"Filter out trivial changes (typos, whitespace, formatting) unless they're significant",
		"Focus on user-relevant changes and high-level summaries",
		"For multiple similar commits, combine them into a single meaningful entry",
		"Use clear, concise language that emphasizes impact",
		"Follow standard changelog format",
		"Do not include any text before or after the markdown content",
		"Do not include any explanations or notes about the formatting",
		"If there are many small commits, focus on the most impactful changes",
		"Group commits by feature or component when possible",
	}
	for i, r := range requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	b.WriteString("\nCommit History:\n")
	for _, c := range in.Commits {
		fmt.Fprintf(&b, "Commit: %s\n", c.SHA)
		fmt.Fprintf(&b, "Author: %s\n", c.Author.Name)
		fmt.Fprintf(&b, "Date: %s\n", c.When.Format(promptDateLayout))
		fmt.Fprintf(&b, "Message: %s\n\n", c.Message)
	}

	if len(groups) > 0 {
		hashLen := in.ShortHashLength
		if hashLen <= 0 {
			hashLen = 7
		}
		b.WriteString("Suggested grouping (by commit message):\n")
		for _, g := range groups {
			hashes := make([]string, len(g.Commits))
			for i, c := range g.Commits {
				hashes[i] = c.ShortSHA(hashLen)
			}
			fmt.Fprintf(&b, "- %s: %s\n", g.Category, strings.Join(hashes, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Generate a clean markdown changelog suitable for a company website. ")
	b.WriteString("Focus on meaningful changes that users would care about, and group related changes together.")

	return b.String()
}

func quoteHeaders(sections []string) string {
	if len(sections) == 0 {
		sections = []string{"Features", "Bug Fixes", "Improvements"}
	}
	quoted := make([]string, len(sections))
	for i, s := range sections {
		quoted[i] = fmt.Sprintf("%q", "## "+s)
	}
	return strings.Join(quoted, ", ")
}
