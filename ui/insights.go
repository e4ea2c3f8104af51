package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// insightsMarkdown is the standing advisory shown under the workforce
// report. Static text, so it renders the same for every upload.
const insightsMarkdown = `Moving forward we would advise taking the following steps:

- Monitor turnover trends to identify retention issues.
- Compare salaries with market benchmarks to stay competitive.
- Address high absenteeism through wellness or attendance programs.
- Encourage skill growth and promotions to retain top talent.
`

// renderInsights converts the advisory markdown to HTML once per render
func renderInsights() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(insightsMarkdown), p, renderer)
	return template.HTML(out)
}
