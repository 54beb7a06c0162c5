package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type TableConfig struct {
	DateWidth     int
	ProductWidth  int
	CategoryWidth int
	AmountWidth   int
	QuantityWidth int
	CustomerWidth int
	RegionWidth   int
	NameWidth     int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:     10,
		ProductWidth:  36,
		CategoryWidth: 15,
		AmountWidth:   12,
		QuantityWidth: 4,
		CustomerWidth: 20,
		RegionWidth:   7,
		NameWidth:     40,
	}
}

// Section is a titled ranking printed below the KPI block.
type Section struct {
	Title string
	Rows  []domain.NamedValue
}

type SummaryReport struct {
	Title      string
	Source     string
	Filters    string
	Rows       int
	LoadError  string
	KPI        domain.KPI
	Comparison *domain.KPIComparison
	Sections   []Section
}

type Reporter struct {
	writer  io.Writer
	config  TableConfig
	printer *message.Printer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		config:  DefaultTableConfig(),
		printer: message.NewPrinter(language.English),
	}
}

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return c.printer.Sprintf("$%.2f", v)
		},
		"count": func(v interface{}) string {
			return c.printer.Sprintf("%d", v)
		},
		"rankRow": func(name string, value float64) string {
			return fmt.Sprintf("  %-*s %*s", c.config.NameWidth, cut(name, c.config.NameWidth),
				c.config.AmountWidth+2, c.printer.Sprintf("$%.2f", value))
		},
		"tableHeader": func() string {
			return c.tableLine(domain.DisplayColumns)
		},
		"tableRow": func(r domain.TableRow) string {
			return c.tableLine([]string{
				cut(r.OrderDate, c.config.DateWidth),
				cut(r.ProductName, c.config.ProductWidth),
				cut(r.Category, c.config.CategoryWidth),
				c.printer.Sprintf("%.2f", r.Sales),
				fmt.Sprintf("%d", r.Quantity),
				c.printer.Sprintf("%.2f", r.Profit),
				cut(r.CustomerName, c.config.CustomerWidth),
				cut(r.Region, c.config.RegionWidth),
			})
		},
		"separator": func() string {
			widths := c.widths()
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}
}

func (c *Reporter) widths() []int {
	return []int{
		c.config.DateWidth,
		c.config.ProductWidth,
		c.config.CategoryWidth,
		c.config.AmountWidth,
		c.config.QuantityWidth,
		c.config.AmountWidth,
		c.config.CustomerWidth,
		c.config.RegionWidth,
	}
}

func (c *Reporter) tableLine(cells []string) string {
	widths := c.widths()
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf(" %-*s ", widths[i], cut(cell, widths[i]))
	}
	return "|" + strings.Join(parts, "|") + "|"
}

func cut(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func (c *Reporter) render(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

const summaryTemplate = `
{{.Title}}
Source: {{.Source}} ({{count .Rows}} rows)
{{if .LoadError}}Load failed: {{.LoadError}}
{{end}}Filters: {{.Filters}}

Total Sales:   {{money .KPI.TotalSales}}
Total Profit:  {{money .KPI.TotalProfit}}
Total Orders:  {{count .KPI.TotalOrders}}
Profit Margin: {{printf "%.1f" .KPI.ProfitMargin}}%
{{with .Comparison}}
Previous period ({{.Start}} to {{.End}}):
  Sales {{money .Previous.TotalSales}}, Profit {{money .Previous.TotalProfit}}, Orders {{count .Previous.TotalOrders}}, Margin {{printf "%.1f" .Previous.ProfitMargin}}%
{{end}}{{range .Sections}}
=== {{.Title}} ===
{{range .Rows}}{{rankRow .Name .Value}}
{{else}}  no data
{{end}}{{end}}`

func (c *Reporter) Summary(report SummaryReport) error {
	return c.render("summary", summaryTemplate, report)
}

const tableTemplate = `{{separator}}
{{tableHeader}}
{{separator}}
{{range .View.Rows}}{{tableRow .}}
{{end}}{{separator}}
Page {{.View.CurrentPage}} of {{.View.TotalPages}} ({{count .View.TotalRows}} rows, sorted by {{.State.SortColumn}} {{.State.SortDirection}}{{if .State.SearchQuery}}, search "{{.State.SearchQuery}}"{{end}})
`

func (c *Reporter) Table(view domain.TableView, state domain.TableViewState) error {
	return c.render("table", tableTemplate, struct {
		View  domain.TableView
		State domain.TableViewState
	}{view, state})
}

func (c *Reporter) Answer(answer string) error {
	_, err := fmt.Fprintln(c.writer, answer)
	return err
}

const suggestionsTemplate = `Try asking:
{{range $i, $s := .}}  {{$i}}. {{$s}}
{{end}}`

func (c *Reporter) Suggestions(suggestions []string) error {
	return c.render("suggestions", suggestionsTemplate, suggestions)
}

const importTemplate = `Imported {{count .Rows}} rows into "{{.Source}}"{{if and .FirstAt .LastAt}} ({{.FirstAt.Format "2006-01-02"}} to {{.LastAt.Format "2006-01-02"}}){{end}}
`

func (c *Reporter) Import(stats *store.ImportStats) error {
	return c.render("import", importTemplate, stats)
}

const sourcesTemplate = `{{range .}}{{.}}
{{else}}no imported sources
{{end}}`

func (c *Reporter) Sources(sources []string) error {
	return c.render("sources", sourcesTemplate, sources)
}
