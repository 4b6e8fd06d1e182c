package export

import (
	"fmt"
	"net/http"
)

// Download hands CSV text to the client as the expenses.csv attachment.
func Download(w http.ResponseWriter, body string) error {
	return attach(w, Filename, MIMEType, []byte(body))
}

// DownloadXLSX does the same for a workbook.
func DownloadXLSX(w http.ResponseWriter, body []byte) error {
	return attach(w, XLSXFilename, XLSXMIMEType, body)
}

func attach(w http.ResponseWriter, name, mime string, body []byte) error {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(body)
	return err
}
