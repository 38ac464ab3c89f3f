package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Fabihno/automated-quotation/models"
	"github.com/Fabihno/automated-quotation/services"
	"github.com/Fabihno/automated-quotation/storage"
	"github.com/Fabihno/automated-quotation/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxRowsPerPage = 6

// maxQuoteItems caps a submission at the template's visual capacity.
const maxQuoteItems = maxRowsPerPage * 10

var titleCaser = cases.Title(language.Und)

// ItemForm carries one submitted item row verbatim, for repopulating the
// form when validation fails.
type ItemForm struct {
	Quantity string
	Rate     string
	Amount   string
	VAT      string
}

// FileRow is one listing entry on the index page.
type FileRow struct {
	File    string
	RelPath string
	Rep     string
}

// QuotationPage is the view model for index.html.
type QuotationPage struct {
	Quotation         models.Quotation
	Items             []ItemForm
	Errors            []string
	RowErrors         []string
	SearchErrors      []string
	Success           bool
	SuccessMessage    string
	Files             []FileRow
	SearchQuotationNo string
	SearchRep         string
}

func newQuotationPage(searchNo, searchRep string) QuotationPage {
	return QuotationPage{
		Quotation:         models.Quotation{Date: time.Now().Format("2006-01-02")},
		SearchQuotationNo: searchNo,
		SearchRep:         searchRep,
	}
}

// repDisplay turns a sanitized directory token back into a readable name.
func repDisplay(dir string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(dir, "_", " ")))
}

func listQuotations(store storage.QuotationStore, searchNo, searchRep string) ([]FileRow, []string) {
	files, err := store.List(searchNo, searchRep)
	if err != nil {
		return nil, []string{searchErrorMessage(err, searchNo, searchRep)}
	}
	rows := make([]FileRow, 0, len(files))
	for _, f := range files {
		rows = append(rows, FileRow{
			File:    f.File,
			RelPath: f.RelPath,
			Rep:     repDisplay(filepath.Dir(f.RelPath)),
		})
	}
	return rows, nil
}

// searchErrorMessage renders a search failure the way the index page
// reports it, echoing whichever filters were supplied.
func searchErrorMessage(err error, searchNo, searchRep string) string {
	switch {
	case errors.Is(err, storage.ErrNoStorageRoot):
		return "No quotations directory found."
	case errors.Is(err, storage.ErrNoMatchingRepresentative):
		msg := "No representative directories found"
		if searchRep != "" {
			msg += " matching: Representative: " + searchRep
		}
		return msg
	case errors.Is(err, storage.ErrNoMatchingQuotations):
		msg := "No quotations found"
		if searchRep != "" || searchNo != "" {
			msg += " matching: "
			if searchRep != "" {
				msg += "Representative: " + searchRep
			}
			if searchRep != "" && searchNo != "" {
				msg += " and "
			}
			if searchNo != "" {
				msg += "Quotation No: " + searchNo
			}
		}
		return msg
	}
	return err.Error()
}

// ShowQuotations godoc
// @Summary      Quotation form and listing
// @Description  Render the quotation form with the stored quotation listing, optionally filtered
// @Tags         quotations
// @Produce      html
// @Param        search      query  string  false  "Quotation number filter (substring)"
// @Param        search_rep  query  string  false  "Representative filter (substring)"
// @Success      200  "HTML page"
// @Router       / [get]
func ShowQuotations(store storage.QuotationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		searchNo := c.Query("search")
		searchRep := c.Query("search_rep")

		page := newQuotationPage(searchNo, searchRep)
		page.Files, page.SearchErrors = listQuotations(store, searchNo, searchRep)
		if generated := c.Query("generated"); generated != "" {
			page.Success = true
			page.SuccessMessage = "Quotation generated successfully: " + generated
		}
		c.HTML(http.StatusOK, "index.html", page)
	}
}

// SubmitQuotation godoc
// @Summary      Submit a quotation or a search
// @Description  Search mode when search_quotation_no/search_rep are present, otherwise validates the submission, generates the PDF and redirects
// @Tags         quotations
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Success      302  "Redirect after successful generation"
// @Success      200  "HTML page with accumulated errors"
// @Router       / [post]
func SubmitQuotation(store storage.QuotationStore, gen *services.NumberGenerator, pdfSvc *services.PDFService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// search-mode posts carry only the search fields
		if c.PostForm("search_quotation_no") != "" || c.PostForm("search_rep") != "" {
			searchNo := c.PostForm("search_quotation_no")
			searchRep := c.PostForm("search_rep")
			page := newQuotationPage(searchNo, searchRep)
			page.Files, page.SearchErrors = listQuotations(store, searchNo, searchRep)
			c.HTML(http.StatusOK, "index.html", page)
			return
		}

		var errs []string
		var rowErrs []string

		page := newQuotationPage("", "")
		q := &page.Quotation
		q.ClientName = c.PostForm("client_name")
		q.Rep = c.PostForm("rep")

		quantities := c.PostFormArray("quantity[]")
		rates := c.PostFormArray("rate[]")
		amounts := c.PostFormArray("amount[]")
		vats := c.PostFormArray("vat[]")
		page.Items = zipItems(quantities, rates, amounts, vats)

		safeRep := utils.SanitizeName(q.Rep)
		safeClient := utils.SanitizeName(q.ClientName)

		if q.Rep != "" {
			if err := store.EnsureDir(safeRep); err != nil {
				errs = append(errs, "Failed to create directory: "+safeRep)
				log.Printf("Failed to create directory %s: %v", safeRep, err)
			}
		}

		if len(quantities) != len(rates) || len(rates) != len(amounts) || len(amounts) != len(vats) {
			errs = append(errs, "Invalid item data submitted.")
		} else if len(quantities) > maxQuoteItems {
			errs = append(errs, fmt.Sprintf("Too many items. Maximum %d items allowed.", maxQuoteItems))
		} else {
			for i := range quantities {
				item, ok := parseItemRow(quantities[i], rates[i], amounts[i], vats[i])
				if !ok {
					rowErrs = append(rowErrs, fmt.Sprintf("Incomplete item data at row %d. Quantity, rate, amount, and VAT are required.", i+1))
					continue
				}
				q.QuoteItems = append(q.QuoteItems, item)
			}
		}
		q.RecomputeTotals()

		if q.ClientName == "" {
			errs = append(errs, "Client name is required.")
		}
		if q.Rep == "" {
			errs = append(errs, "Representative name is required.")
		}
		if len(q.QuoteItems) == 0 {
			errs = append(errs, "At least one complete item is required.")
		}

		if len(errs) == 0 {
			if _, err := os.Stat(pdfSvc.TemplatePath()); err != nil {
				errs = append(errs, "Quotation template not found: "+pdfSvc.TemplatePath())
			} else if !store.WritableDir(safeRep) {
				errs = append(errs, "Output directory is not writable: "+safeRep)
			} else if generated, err := generateQuotation(store, gen, pdfSvc, q, safeRep, safeClient); err != nil {
				errs = append(errs, err.Error())
			} else {
				c.Redirect(http.StatusFound, "/?generated="+url.QueryEscape(generated))
				return
			}
		}

		page.Errors = errs
		page.RowErrors = rowErrs
		page.Files, page.SearchErrors = listQuotations(store, "", "")
		c.HTML(http.StatusOK, "index.html", page)
	}
}

// generateQuotation assigns the number, composes the PDF and persists it.
// The claim taken by the generator is released again on any failure so a
// failed submission leaves nothing behind.
func generateQuotation(store storage.QuotationStore, gen *services.NumberGenerator, pdfSvc *services.PDFService, q *models.Quotation, safeRep, safeClient string) (string, error) {
	no, relPath, err := gen.Generate(safeRep, safeClient)
	if err != nil {
		return "", fmt.Errorf("Quotation number generation failed: %v", err)
	}
	q.QuotationNo = no

	data, err := pdfSvc.Compose(q, relPath)
	if err != nil {
		store.Remove(relPath)
		return "", fmt.Errorf("PDF generation failed: %v", err)
	}
	if err := store.Put(relPath, data); err != nil {
		store.Remove(relPath)
		return "", fmt.Errorf("Failed to save quotation: %v", err)
	}
	return filepath.Base(relPath), nil
}

// parseItemRow parses one row of the parallel item arrays. A row is
// accepted only when quantity, rate and amount are all strictly positive;
// a blank VAT defaults to zero rather than failing.
func parseItemRow(quantity, rate, amount, vat string) (models.QuoteItem, bool) {
	qty, err1 := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
	rt, err2 := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	amt, err3 := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return models.QuoteItem{}, false
	}
	vt := 0.0
	if strings.TrimSpace(vat) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(vat), 64)
		if err != nil {
			return models.QuoteItem{}, false
		}
		vt = parsed
	}
	if qty <= 0 || rt <= 0 || amt <= 0 {
		return models.QuoteItem{}, false
	}
	return models.QuoteItem{Quantity: qty, Rate: rt, Amount: amt, VAT: vt}, true
}

func zipItems(quantities, rates, amounts, vats []string) []ItemForm {
	n := len(quantities)
	items := make([]ItemForm, 0, n)
	for i := 0; i < n; i++ {
		item := ItemForm{Quantity: quantities[i]}
		if i < len(rates) {
			item.Rate = rates[i]
		}
		if i < len(amounts) {
			item.Amount = amounts[i]
		}
		if i < len(vats) {
			item.VAT = vats[i]
		}
		items = append(items, item)
	}
	return items
}
