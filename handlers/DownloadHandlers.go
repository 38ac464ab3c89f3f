package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fabihno/automated-quotation/storage"

	"github.com/gin-gonic/gin"
)

// DownloadQuotation godoc
// @Summary      Download a stored quotation
// @Description  Stream a quotation PDF by path relative to the storage root, query param ?file=rep/name.pdf
// @Tags         quotations
// @Produce      application/pdf
// @Param        file  query     string  true  "Path relative to the quotations directory"
// @Success      200   {file}   file    "File content"
// @Failure      400   {object}  object
// @Failure      404   {object}  object
// @Router       /download [get]
func DownloadQuotation(store storage.QuotationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileName := c.Query("file")
		if fileName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file parameter is required"})
			return
		}

		// reject traversal before resolving against the storage root
		cleanFileName := filepath.Clean(fileName)
		if cleanFileName != fileName || strings.Contains(cleanFileName, "..") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
			return
		}

		filePath, err := store.Abs(cleanFileName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
			return
		}

		info, err := os.Stat(filePath)
		if err != nil || info.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		c.FileAttachment(filePath, filepath.Base(filePath))
	}
}
