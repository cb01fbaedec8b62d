package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/p-n-ai/studymate/internal/app"
	"github.com/p-n-ai/studymate/internal/markup"
	"github.com/p-n-ai/studymate/internal/study"
)

//go:embed templates/page.html
var templates embed.FS

var pageTmpl = template.Must(
	template.New("page.html").Funcs(template.FuncMap{
		"inline": markup.Inline,
		"indent": func(n int) int { return n * 24 },
		"inc":    func(n int) int { return n + 1 },
	}).ParseFS(templates, "templates/page.html"),
)

type pageData struct {
	Exam    string
	Kinds   []study.Kind
	Tracked bool
	View    app.View
}

func renderPage(w io.Writer, exam string, v app.View) error {
	return pageTmpl.Execute(w, pageData{
		Exam:    exam,
		Kinds:   study.Kinds,
		Tracked: v.Topic != "" && v.Kind.Tracked(),
		View:    v,
	})
}
