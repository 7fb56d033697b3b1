package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []heading
	}{
		{
			name: "atx",
			text: "# Title\n```\n# not a heading\n```\n## Sub ##\n#nospace\n###### Deep",
			want: []heading{{1, "Title"}, {2, "Sub"}, {6, "Deep"}},
		},
		{
			name: "setext and indented code",
			text: "Overview\n========\n\nbody\n\nDetails\n-------\n\n    # not a heading (indented code)\n\n## Real\n",
			want: []heading{{1, "Overview"}, {2, "Details"}, {2, "Real"}},
		},
		{
			name: "inline markup is flattened",
			text: "## The *quick* `fox`\n\n#  \n",
			want: []heading{{2, "The quick fox"}},
		},
		{
			name: "nested in a blockquote",
			text: "> ### Quoted\n",
			want: []heading{{3, "Quoted"}},
		},
		{
			name: "none",
			text: "just text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractHeadings(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("extractHeadings = %#v, want %#v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("extractHeadings[%d] = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	styles := GetTheme("light").Styles()
	source := strings.Join([]string{
		"# Runbook",
		"",
		"Restart the service",
		"when it hangs.",
		"",
		"- first",
		"- second",
		"",
		"1. one",
		"2. two",
		"",
		"```sh",
		"systemctl restart folio",
		"```",
		"",
		"> quoted",
		"",
		"| Key | Value |",
		"| --- | ----- |",
		"| a   | 1     |",
	}, "\n")

	out := ansi.Strip(renderMarkdown(source, styles, 60))
	for _, want := range []string{
		"Runbook",
		"Restart the service when it hangs.",
		"• first",
		"• second",
		"1. one",
		"2. two",
		"systemctl restart folio",
		"│ quoted",
		"Key │ Value",
		"a │ 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("renderMarkdown output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "```") || strings.Contains(out, "# Runbook") {
		t.Fatalf("renderMarkdown should not echo markdown syntax:\n%s", out)
	}
}

func TestRenderMarkdown_WrapsToWidth(t *testing.T) {
	styles := GetTheme("light").Styles()
	out := renderMarkdown(strings.Repeat("word ", 40), styles, 20)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line %q is %d cells wide, want <= 20", ansi.Strip(line), w)
		}
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := renderMarkdown("  \n", GetTheme("dark").Styles(), 40); got != "" {
		t.Fatalf("renderMarkdown(blank) = %q, want empty", got)
	}
}
