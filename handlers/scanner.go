package handlers

import (
	"net/http"

	"nutrivida/services/scanner"
	"nutrivida/utils"

	"github.com/gin-gonic/gin"
)

// ScanHandler exposes the scanners as synchronous admin endpoints, the
// manual counterpart of their periodic triggers.
type ScanHandler struct {
	scanners map[string]scanner.Scanner
}

func NewScanHandler(scanners []scanner.Scanner) *ScanHandler {
	byName := make(map[string]scanner.Scanner, len(scanners))
	for _, sc := range scanners {
		byName[sc.Name()] = sc
	}
	return &ScanHandler{scanners: byName}
}

// RunHandler runs one scanner by name and reports its counts.
func (h *ScanHandler) RunHandler(c *gin.Context) {
	name := c.Param("name")
	sc, ok := h.scanners[name]
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "unknown scanner", name)
		return
	}

	res, err := sc.Scan(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "scan failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"scanner": name, "result": res})
}

// ListHandler names the registered scanners.
func (h *ScanHandler) ListHandler(c *gin.Context) {
	names := make([]string, 0, len(h.scanners))
	for name := range h.scanners {
		names = append(names, name)
	}
	c.JSON(http.StatusOK, gin.H{"scanners": names})
}
