package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/Fabihno/automated-quotation/storage"
	"github.com/Fabihno/automated-quotation/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportQuotations godoc
// @Summary      Export the quotation register
// @Description  Download an xlsx register of stored quotations, honoring the same filters as the listing
// @Tags         quotations
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search      query  string  false  "Quotation number filter (substring)"
// @Param        search_rep  query  string  false  "Representative filter (substring)"
// @Success      200  {file}   file  "Register spreadsheet"
// @Failure      404  {object}  object
// @Failure      500  {object}  object
// @Router       /export [get]
func ExportQuotations(store storage.QuotationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		searchNo := c.Query("search")
		searchRep := c.Query("search_rep")

		files, err := store.List(searchNo, searchRep)
		if err != nil {
			utils.ErrorResponse(c, searchErrorMessage(err, searchNo, searchRep), http.StatusNotFound)
			return
		}

		f := excelize.NewFile()
		defer func() {
			if err := f.Close(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error closing Excel file"})
			}
		}()

		sheet := "Quotations"
		index, err := f.NewSheet(sheet)
		if err != nil {
			utils.ErrorResponse(c, "Error creating register sheet", http.StatusInternalServerError)
			return
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1") // Delete default sheet

		headers := []string{"Representative", "File", "Path", "Size (bytes)", "Modified"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for _, qf := range files {
			full, err := store.Abs(qf.RelPath)
			if err != nil {
				continue
			}
			var size int64
			var modified string
			if info, err := os.Stat(full); err == nil {
				size = info.Size()
				modified = info.ModTime().Format("2006-01-02 15:04:05")
			}
			values := []interface{}{
				repDisplay(filepath.Dir(qf.RelPath)),
				qf.File,
				qf.RelPath,
				size,
				modified,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		c.Header("Content-Disposition", "attachment;filename=quotation_register.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing Excel file"})
		}
	}
}
