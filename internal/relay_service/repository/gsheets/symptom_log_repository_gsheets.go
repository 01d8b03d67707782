package gsheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"google.golang.org/api/sheets/v4"

	"github.com/healthsms/relay/internal/relay_service/domain"
)

const sheetURLBase = "https://docs.google.com/spreadsheets/d/"

// SymptomLogRepository stores symptom entries as rows of a Google Sheet
// (columns: date, time, body, urgency). The sheets.Service is a stateless
// HTTP client; each call here is an independent remote operation with no
// cross-request caching.
type SymptomLogRepository struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *slog.Logger
}

// NewSymptomLogRepository creates a repository bound to one spreadsheet.
// sheetName is the worksheet the log lives on (typically "Sheet1").
func NewSymptomLogRepository(svc *sheets.Service, spreadsheetID, sheetName string, logger *slog.Logger) *SymptomLogRepository {
	return &SymptomLogRepository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.With("repository", "gsheets"),
	}
}

// Append adds one row at the end of the sheet.
func (r *SymptomLogRepository) Append(ctx context.Context, entry domain.SymptomEntry) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{
			{entry.Date, entry.Time, entry.Body, entry.Urgency},
		},
	}

	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", r.spreadsheetID, err)
	}

	r.logger.InfoContext(ctx, "Appended symptom entry", "date", entry.Date, "urgency", entry.Urgency)
	return nil
}

// LastEntries fetches the whole sheet and returns up to n of the most recent
// entries. The first row is the header and is discarded.
func (r *SymptomLogRepository) LastEntries(ctx context.Context, n int) ([]domain.SymptomEntry, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", r.spreadsheetID, err)
	}

	entries := entriesFromRows(resp.Values, n)
	r.logger.DebugContext(ctx, "Read symptom entries", "rows", len(resp.Values), "entries", len(entries))
	return entries, nil
}

// SheetURL returns the public URL of the spreadsheet.
func (r *SymptomLogRepository) SheetURL() string {
	return sheetURLBase + r.spreadsheetID
}

// entriesFromRows maps raw sheet rows to entries. The first row is always a
// header and is skipped; rows with fewer than four cells are ignored. Rows
// come back from the API as strings, so urgency is parsed best-effort.
func entriesFromRows(rows [][]interface{}, n int) []domain.SymptomEntry {
	if len(rows) <= 1 {
		return nil
	}

	dataRows := rows[1:]
	if len(dataRows) > n {
		dataRows = dataRows[len(dataRows)-n:]
	}

	entries := make([]domain.SymptomEntry, 0, len(dataRows))
	for _, row := range dataRows {
		if len(row) < 4 {
			continue
		}
		urgency, _ := strconv.Atoi(cellString(row[3]))
		entries = append(entries, domain.SymptomEntry{
			Date:    cellString(row[0]),
			Time:    cellString(row[1]),
			Body:    cellString(row[2]),
			Urgency: urgency,
		})
	}
	return entries
}

func cellString(cell interface{}) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}
