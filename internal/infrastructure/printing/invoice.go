package printing

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"

	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
	"go.uber.org/zap"
)

//go:embed templates/invoice.html
var invoiceTemplate string

const invoiceFooter = `<div style="font-size:8px;width:100%;text-align:center;color:#9aa5b1;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// InvoicePrinter renders order invoices. PDF output is available only when a
// PDFRenderer is configured.
type InvoicePrinter struct {
	engine *TemplateEngine
	tmpl   *template.Template
	pdf    PDFRenderer
	logger *zap.Logger
}

// NewInvoicePrinter parses the embedded invoice template. pdf may be nil.
func NewInvoicePrinter(engine *TemplateEngine, pdf PDFRenderer, logger *zap.Logger) (*InvoicePrinter, error) {
	tmpl, err := engine.Parse("invoice", invoiceTemplate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePrinter{engine: engine, tmpl: tmpl, pdf: pdf, logger: logger}, nil
}

// RenderHTML renders the invoice as a standalone HTML document
func (p *InvoicePrinter) RenderHTML(_ context.Context, data *tradeapp.InvoiceData) ([]byte, error) {
	return p.engine.Execute(p.tmpl, data)
}

// RenderPDF renders the invoice as an A4 PDF document
func (p *InvoicePrinter) RenderPDF(ctx context.Context, data *tradeapp.InvoiceData) ([]byte, error) {
	if p.pdf == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "PDF rendering is not configured", nil)
	}
	html, err := p.RenderHTML(ctx, data)
	if err != nil {
		return nil, err
	}
	result, err := p.pdf.Render(ctx, &RenderRequest{
		HTML:       string(html),
		Title:      fmt.Sprintf("Invoice %s", data.OrderNumber),
		Margins:    DefaultMargins(),
		FooterHTML: invoiceFooter,
	})
	if err != nil {
		p.logger.Error("Invoice PDF rendering failed",
			zap.String("order_number", data.OrderNumber),
			zap.Error(err))
		return nil, err
	}
	return result.PDFData, nil
}

// PDFEnabled reports whether a PDF renderer is configured
func (p *InvoicePrinter) PDFEnabled() bool {
	return p.pdf != nil
}

var _ tradeapp.InvoiceRenderer = (*InvoicePrinter)(nil)
