package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// formValues is what the entry form shows when the page renders.
type formValues struct {
	Date   string
	Item   string
	Amount string
}

// parseID reads the {id} path value.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// prefillQuery encodes form values for the redirect after an edit.
func prefillQuery(f formValues) string {
	q := url.Values{}
	q.Set("date", f.Date)
	q.Set("item", f.Item)
	q.Set("amount", f.Amount)
	return q.Encode()
}

// sanitizeInput removes control characters except tab, newline and
// carriage return. Whitespace is kept as typed.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func redirectHome(w http.ResponseWriter, r *http.Request, query string) {
	target := "/"
	if query != "" {
		target += "?" + query
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
