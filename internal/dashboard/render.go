package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/nao1215/cordexplorer/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer implements echo.Renderer over the embedded templates.
type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &templateRenderer{templates: t}, nil
}

// Render executes the named template.
func (r *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Section is one chart block of the page.
type Section struct {
	ID       string
	Heading  string
	ChartURL string
	ImageURL string
}

// Sections lists the chart blocks in page order.
var Sections = []Section{
	{ID: "publications-over-time", Heading: "Publications Over Time", ChartURL: "/charts/" + ChartYears},
	{ID: "top-journals", Heading: "Top 10 Publishing Journals", ChartURL: "/charts/" + ChartJournals},
	{ID: "sources", Heading: "Distribution of Papers by Source", ChartURL: "/charts/" + ChartSources},
	{ID: "word-cloud", Heading: "Word Cloud of Paper Titles", ChartURL: "/charts/" + ChartWordCloud, ImageURL: "/charts/wordcloud.png"},
}

// PreviewRow is one row of the raw data table.
type PreviewRow struct {
	Index int
	Cells []string
}

// Page is the data of the index template.
type Page struct {
	Title       string
	Description string
	SourcePath  string
	RowsKept    int
	RowsDropped int
	Sections    []Section
	PreviewNote string
	Columns     []string
	Rows        []PreviewRow
}

// newPage builds the index page from an analysis. The preview holds the
// first n cleaned rows, indexed from 0.
func newPage(cfg PageConfig, a *model.Analysis) Page {
	p := Page{
		Title:       cfg.Title,
		Description: cfg.Description,
		SourcePath:  a.SourcePath,
		RowsKept:    a.RowsKept(),
		RowsDropped: a.RowsDropped,
		Sections:    Sections,
		PreviewNote: fmt.Sprintf("A sample of the first %d rows of the cleaned dataset.", cfg.PreviewRows),
	}
	if a.Dataset == nil {
		return p
	}

	p.Columns = a.Dataset.Columns
	head := a.Preview(cfg.PreviewRows)
	p.Rows = make([]PreviewRow, len(head))
	for i := range head {
		p.Rows[i] = PreviewRow{Index: i, Cells: a.Dataset.Row(i)}
	}
	return p
}
