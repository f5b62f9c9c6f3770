package ui

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sheetstore/adapters/excel"
	"sheetstore/app"
	"sheetstore/domain/core"
	"sheetstore/domain/tabular"
)

type uploadResponse struct {
	Headers  []string          `json:"headers"`
	Rows     [][]string        `json:"rows"`
	FileName string            `json:"fileName"`
	RowCount int               `json:"rowCount"`
	Storage  app.PersistResult `json:"storage"`
}

// handleUpload parses the multipart spreadsheet payload and persists it.
// When the storage write fails the parsed data is still echoed back, so
// the client can see what was read even though the save did not happen.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	// Parse routing follows the uploaded file's extension; the optional
	// fileName field only overrides the stored display name.
	ds, err := excel.Parse(header.Filename, file)
	if err != nil {
		log.Printf("[handleUpload] parse failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse file: %v", err)})
		return
	}
	if name := c.PostForm("fileName"); name != "" {
		ds.FileName = name
	}
	if ds.RowCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.ErrEmptyDataset.Error()})
		return
	}

	result, err := s.service.Upload(c.Request.Context(), ds, c.PostForm("documentId"))
	resp := uploadResponse{
		Headers:  ds.Headers,
		Rows:     echoRows(ds),
		FileName: ds.FileName,
		RowCount: ds.RowCount,
		Storage:  result,
	}
	if err != nil {
		log.Printf("[handleUpload] storage write failed: %v", err)
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// echoRows stringifies the parsed rows through the same encode/decode
// pair persistence uses, so the response matches what a later fetch
// returns.
func echoRows(ds *tabular.Dataset) [][]string {
	return tabular.DecodeRows(ds.Headers, tabular.EncodeRows(ds.Headers, ds.Rows))
}

func (s *Server) handleList(c *gin.Context) {
	files, err := s.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to list files: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files, "count": len(files)})
}

func (s *Server) handleGet(c *gin.Context) {
	table, err := s.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to fetch file: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         table.ID,
		"fileName":   table.FileName,
		"headers":    table.Headers,
		"rows":       table.Rows,
		"rowCount":   table.RowCount,
		"uploadedAt": table.UploadedAt,
		"updatedAt":  table.UpdatedAt,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("failed to delete: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "file deleted"})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SearchTerm) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.ErrMissingSearchTerm.Error()})
		return
	}

	results, total, err := s.service.Search(c.Request.Context(), req.SearchTerm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("search failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "totalMatches": total})
}
