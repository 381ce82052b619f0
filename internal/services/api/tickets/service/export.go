package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/services/api/tickets/domain"
)

// utf8BOM keeps spreadsheet tools from misreading the encoding
const utf8BOM = "\uFEFF"

var exportHeader = []string{"ID", "Email", "Description", "Status", "CreatedAt", "UpdatedAt"}

// ExportCSV renders tickets as a semicolon separated CSV download
// fields containing the separator, quotes, or newlines are quoted with
// doubled internal quotes
func (s *Svc) ExportCSV(ctx context.Context, in domain.ExportInput) ([]byte, string, error) {
	rows, err := s.Repo.ListForExport(ctx, in.From, in.To)
	if err != nil {
		return nil, "", perr.FromPostgres(err, "ticket export")
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(exportHeader); err != nil {
		return nil, "", perr.Wrap(err, perr.ErrorCodeUnknown, "csv write")
	}
	for _, r := range rows {
		rec := []string{
			r.ID,
			r.Email,
			foldDescription(r.Description),
			r.Status,
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(rec); err != nil {
			return nil, "", perr.Wrap(err, perr.ErrorCodeUnknown, "csv write")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", perr.Wrap(err, perr.ErrorCodeUnknown, "csv write")
	}

	name := "tickets_" + time.Now().UTC().Format("2006-01-02") + ".csv"
	return buf.Bytes(), name, nil
}

// foldDescription flattens a description into a single display line before
// quoting: carriage returns dropped, newlines to spaces, separators to commas
func foldDescription(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ";", ",")
	return s
}
