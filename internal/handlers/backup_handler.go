package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"webbaby/internal/service"
)

// BackupHandler streams database backups
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export downloads a backup; ?compress=true selects zstd
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	compress := false
	if value := r.URL.Query().Get("compress"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "compress must be true or false", "", nil)
			return
		}
		compress = parsed
	}

	filename := fmt.Sprintf("webbaby-backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	contentType := "application/json"
	if compress {
		filename += ".zst"
		contentType = "application/zstd"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	out := &writeTracker{w: w}
	if _, err := h.backupService.ExportToWriter(out, compress); err != nil {
		if out.written {
			// The status line is already out
			log.Printf("Error streaming backup: %v", err)
			return
		}
		w.Header().Del("Content-Disposition")
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error exporting backup", err)
	}
}

// writeTracker records whether any byte reached the client
type writeTracker struct {
	w       io.Writer
	written bool
}

func (t *writeTracker) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.written = true
	}
	return t.w.Write(p)
}
