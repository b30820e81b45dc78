package web

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

const maxUploadSize = 25 << 20 // 25 MB

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// upload handles POST /api/uploads — stores an order document under a
// generated name and returns it. The file content is never inspected; the
// stored name is what the order form persists in its document_file field.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer f.Close()

	// Original name survives in the stored filename for operator recognition,
	// separated from the uuid by a triple underscore.
	original := unsafeFilenameChars.ReplaceAllString(filepath.Base(fh.Filename), "_")
	if original == "" || original == "." {
		original = "document"
	}
	stored := fmt.Sprintf("%s___%s", uuid.NewString(), original)

	dest, err := os.OpenFile(filepath.Join(h.uploadDir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		writeError(w, r, "failed to save uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	size, err := io.Copy(dest, f)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(h.uploadDir, stored))
		writeError(w, r, "failed to save uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	type response struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"original_name"`
		SizeBytes    int64  `json:"size_bytes"`
	}
	writeJSON(w, response{Filename: stored, OriginalName: fh.Filename, SizeBytes: size})
}
