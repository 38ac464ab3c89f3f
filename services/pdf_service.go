package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fabihno/automated-quotation/models"

	"github.com/jung-kurt/gofpdf"
	fpdi "github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	qrcode "github.com/skip2/go-qrcode"
)

// Overlay coordinates in pt, measured from the bottom-left corner of the
// template's first page (A4 portrait). The template layout is fixed, so
// these are design constants, not configuration.
const (
	coordQuotationNoX = 540.27
	coordQuotationNoY = 600.18
	coordDateX        = 540.27
	coordDateY        = 620.18
	coordRepX         = 545.27
	coordRepY         = 560.18
	coordClientX      = 56.68
	coordClientY      = 575.18

	itemsStartX   = 290.0
	itemsStartY   = 450.0
	itemRowHeight = 20.0

	coordSubtotalX = 540.0
	coordSubtotalY = 212.7
	coordTaxX      = 540.0
	coordTaxY      = 178.53
	coordTotalX    = 540.0
	coordTotalY    = 145.36

	currencyLabel = "KES "

	qrX    = 40.0
	qrY    = 60.0
	qrSize = 70.0
)

// Column offsets from itemsStartX for quantity, rate, amount and VAT.
var itemColOffsets = [4]float64{0, 60, 150, 240}

// PDFService composes quotation PDFs by drawing a text overlay onto the
// fixed template document.
type PDFService struct {
	templateDir string
}

func NewPDFService(templateDir string) *PDFService {
	return &PDFService{templateDir: templateDir}
}

// TemplatePath returns the location of the fixed template document.
func (s *PDFService) TemplatePath() string {
	return filepath.Join(s.templateDir, models.TemplateFile)
}

// Compose imports every template page and draws the quotation fields onto
// the first one. downloadRel is encoded into a QR code so a printed copy
// links back to the stored artifact. The returned bytes are the complete
// merged document; the caller decides where they are persisted.
func (s *PDFService) Compose(q *models.Quotation, downloadRel string) (out []byte, err error) {
	templatePath := s.TemplatePath()
	if _, statErr := os.Stat(templatePath); statErr != nil {
		return nil, fmt.Errorf("quotation template not found: %s", templatePath)
	}
	pageCount, err := api.PageCountFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotation template: %w", err)
	}

	// gofpdi panics on templates it cannot parse
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("pdf generation failed: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 10)
	pageW, pageH := pdf.GetPageSize()

	for page := 1; page <= pageCount; page++ {
		pdf.AddPage()
		tpl := fpdi.ImportPage(pdf, templatePath, page, "/MediaBox")
		fpdi.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)
		if page == 1 {
			s.drawOverlay(pdf, q, downloadRel, pageH)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf generation failed: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) drawOverlay(pdf *gofpdf.Fpdf, q *models.Quotation, downloadRel string, pageH float64) {
	// the coordinate constants count from the page bottom
	y := func(fromBottom float64) float64 { return pageH - fromBottom }
	left := func(x, fromBottom float64, text string) {
		pdf.Text(x, y(fromBottom), text)
	}
	right := func(x, fromBottom float64, text string) {
		pdf.Text(x-pdf.GetStringWidth(text), y(fromBottom), text)
	}

	right(coordQuotationNoX, coordQuotationNoY, q.QuotationNo)
	right(coordDateX, coordDateY, q.Date)
	right(coordRepX, coordRepY, q.Rep)
	left(coordClientX, coordClientY, q.ClientName)

	// item rows step down a fixed height; the item count is capped at the
	// validation layer, there is no pagination here
	rowY := itemsStartY
	for _, item := range q.QuoteItems {
		left(itemsStartX+itemColOffsets[0], rowY, strconv.FormatFloat(item.Quantity, 'f', -1, 64))
		left(itemsStartX+itemColOffsets[1], rowY, fmt.Sprintf("%.0f", item.Rate))
		left(itemsStartX+itemColOffsets[2], rowY, fmt.Sprintf("%.0f", item.Amount))
		left(itemsStartX+itemColOffsets[3], rowY, fmt.Sprintf("%.0f", item.VAT))
		rowY -= itemRowHeight
	}

	right(coordSubtotalX, coordSubtotalY, fmt.Sprintf("%s%.0f", currencyLabel, q.Subtotal))
	right(coordTaxX, coordTaxY, fmt.Sprintf("%s%.0f", currencyLabel, q.Tax))
	right(coordTotalX, coordTotalY, fmt.Sprintf("%s%.0f", currencyLabel, q.Total))

	if downloadRel != "" {
		if png, qrErr := qrcode.Encode("/download?file="+downloadRel, qrcode.Medium, 256); qrErr == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			name := "qr-" + q.QuotationNo
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			pdf.ImageOptions(name, qrX, y(qrY)-qrSize, qrSize, qrSize, false, opts, 0, "")
		}
	}
}
