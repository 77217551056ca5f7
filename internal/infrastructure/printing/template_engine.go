package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders html/template documents with formatting helpers
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a template engine with the default helpers
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{
		funcMap: template.FuncMap{
			"formatMoney":    formatMoney,
			"formatDate":     formatDate,
			"formatDateTime": formatDateTime,
			"statusText":     statusText,
			"upper":          strings.ToUpper,
			"default":        defaultString,
			"inc":            func(i int) int { return i + 1 },
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse compiles a named template with the engine's helpers
func (e *TemplateEngine) Parse(name, content string) (*template.Template, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}
	return tmpl, nil
}

// Execute runs a parsed template against data
func (e *TemplateEngine) Execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.Bytes(), nil
}

// RenderString parses and executes a template in one step
func (e *TemplateEngine) RenderString(name, content string, data any) (string, error) {
	tmpl, err := e.Parse(name, content)
	if err != nil {
		return "", err
	}
	out, err := e.Execute(tmpl, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// formatMoney formats an amount with two decimals and thousand separators
// Example: 1234.5 -> "1,234.50"
func formatMoney(v any) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, decPart, _ := strings.Cut(d.StringFixed(2), ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "." + decPart
}

// formatDate formats a time as "15 Mar 2026"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// formatDateTime formats a time as "15 Mar 2026 14:30 UTC"
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02 Jan 2006 15:04 MST")
}

// statusText turns an upper-case status code into a label
// Example: "IN_TRANSIT" -> "In Transit"
func statusText(status string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(status, "_", " ")))
}

func defaultString(def, val string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}

func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		panic(fmt.Sprintf("formatMoney: unsupported type %T", v))
	}
}
