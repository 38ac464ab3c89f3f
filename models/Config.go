package models

// Config holds the process-wide storage locations. It is built once at
// startup from the environment and passed explicitly to each handler.
type Config struct {
	QuotationsDir string // root directory for generated quotation PDFs
	TemplateDir   string // directory containing QUOTATION.pdf
}

// TemplateFile is the fixed-layout base document the overlay is merged onto.
const TemplateFile = "QUOTATION.pdf"
