package clientapp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/session"
	"github.com/phillip-england/shipdesk/internal/spreadsheet"
)

const (
	maxImportBytes = 5 << 20
	maxImportRows  = 500

	// maxReportedFailures caps the per-row errors carried back in the flash.
	maxReportedFailures = 5
)

var importColumns = []string{"username", "email", "password", "phone", "address"}

// importRow is one data row of a customer sheet. Line is the spreadsheet row number.
type importRow struct {
	Line    int
	Account customerAccount
}

// parseCustomerSheet maps the header row to accounts. Blank rows are skipped.
func parseCustomerSheet(rows [][]string) ([]importRow, error) {
	if len(rows) == 0 {
		return nil, spreadsheet.ErrEmptyWorksheet
	}
	idx := spreadsheet.HeaderIndex(rows[0])
	for _, required := range importColumns[:3] {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	col := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	out := make([]importRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		a := customerAccount{
			Username: spreadsheet.Cell(row, col("username")),
			Email:    spreadsheet.Cell(row, col("email")),
			Password: spreadsheet.Cell(row, col("password")),
			Phone:    spreadsheet.Cell(row, col("phone")),
			Address:  spreadsheet.Cell(row, col("address")),
		}
		if a == (customerAccount{}) {
			continue
		}
		out = append(out, importRow{Line: i + 2, Account: a})
	}
	if len(out) == 0 {
		return nil, errors.New("no customer rows found below the header")
	}
	if len(out) > maxImportRows {
		return nil, fmt.Errorf("too many rows: %d (limit %d)", len(out), maxImportRows)
	}
	return out, nil
}

func (s *server) importCustomersProxy(w http.ResponseWriter, r *http.Request) {
	target := employeeView("clients")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes+(1<<20))
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		redirectWith(w, r, target, "error", "Invalid upload form.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		redirectWith(w, r, target, "error", "Please choose a .xlsx or .xls file to import.")
		return
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xls":
	default:
		redirectWith(w, r, target, "error", "Unsupported file type. Upload a .xlsx or .xls file.")
		return
	}

	sheet, err := spreadsheet.ReadRows(io.LimitReader(file, maxImportBytes), header.Filename)
	if err != nil {
		s.logFor(r).Info().Err(err).Str("file", header.Filename).Msg("customer import unreadable")
		redirectWith(w, r, target, "error", "Unable to read the spreadsheet: "+err.Error())
		return
	}
	rows, err := parseCustomerSheet(sheet)
	if err != nil {
		redirectWith(w, r, target, "error", err.Error())
		return
	}

	sc := session.From(r.Context())
	created := 0
	var failures []string
	for _, row := range rows {
		if res := row.Account.validate(); !res.Valid {
			failures = append(failures, fmt.Sprintf("Row %d: %s", row.Line, res.Message()))
			continue
		}
		if _, err := s.registerCustomer(r.Context(), sc, row.Account); err != nil {
			if apiclient.IsUnauthorized(err) {
				s.expire(w, r)
				return
			}
			failures = append(failures, fmt.Sprintf("Row %d: %s", row.Line, apiclient.MessageOf(err)))
			continue
		}
		created++
	}
	s.logFor(r).Info().
		Str("file", header.Filename).
		Int("created", created).
		Int("failed", len(failures)).
		Msg("customer import finished")

	http.Redirect(w, r, target+"&"+importFlash(created, failures).Encode(), http.StatusFound)
}

func importFlash(created int, failures []string) url.Values {
	v := url.Values{}
	v.Set("message", fmt.Sprintf("Imported %d customer(s).", created))
	if len(failures) == 0 {
		return v
	}
	shown := failures
	if len(shown) > maxReportedFailures {
		shown = shown[:maxReportedFailures]
	}
	msg := fmt.Sprintf("%d row(s) failed. %s", len(failures), strings.Join(shown, " "))
	if len(failures) > len(shown) {
		msg += fmt.Sprintf(" (%d more)", len(failures)-len(shown))
	}
	v.Set("error", msg)
	return v
}
