// Package printing renders order invoices as HTML from an embedded template
// and converts them to PDF through headless Chrome (chromedp).
//
// Example usage:
//
//	pdf, err := NewChromedpRenderer(&ChromedpConfig{RemoteURL: cfg.Printing.RemoteChrome})
//	if err != nil {
//	    return err
//	}
//	printer := NewInvoicePrinter(NewTemplateEngine(), pdf, logger)
//	html, err := printer.RenderHTML(ctx, data)
package printing
