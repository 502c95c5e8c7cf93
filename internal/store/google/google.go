// Package google persists the ledger in a Google Sheets tab laid out exactly
// like the CSV file: a header row followed by one row per transaction.
//
// Save clears the tab and rewrites it with two API calls, so it is not
// atomic. A failure between the calls leaves the tab empty or partial; the
// next successful Save repairs it.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"keuangan/internal/core"
	"keuangan/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var _ store.Store = (*Client)(nil)

const (
	defaultSheetName = "Keuangan"
	lastColumn       = "G"
)

type Config struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

// New creates a Sheets-backed store authenticated with a service account.
// Credentials come from cfg, falling back to GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	creds, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created", "spreadsheet_id", cfg.SpreadsheetID)
	return NewWithService(svc, cfg.SpreadsheetID, cfg.SheetName), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheet string) *Client {
	if strings.TrimSpace(sheet) == "" {
		sheet = defaultSheetName
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}
}

func credentials(ctx context.Context, cfg Config) ([]byte, error) {
	inline := strings.TrimSpace(cfg.ServiceAccountJSON)
	file := strings.TrimSpace(cfg.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline service account credentials")
		return []byte(inline), nil
	case file != "":
		slog.DebugContext(ctx, "Reading service account credentials", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	}
	return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
}

func (c *Client) source() string {
	return fmt.Sprintf("sheets:%s/%s", c.spreadsheetID, c.sheet)
}

func (c *Client) dataRange() string {
	return fmt.Sprintf("%s!A:%s", c.sheet, lastColumn)
}

// Load reads the tab. A tab with no rows is an empty ledger.
func (c *Client) Load(ctx context.Context) (core.Ledger, error) {
	if c.svc == nil {
		return core.Ledger{}, &core.StorageReadError{Source: c.source(), Err: errors.New("sheets service not initialized")}
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.dataRange()).Context(ctx).Do()
	if err != nil {
		return core.Ledger{}, &core.StorageReadError{Source: c.source(), Err: fmt.Errorf("read %s: %w", c.dataRange(), err)}
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, v := range resp.Values {
		rows = append(rows, toStrings(v))
	}
	return store.DecodeRows(c.source(), trimBlankTail(rows))
}

// Save clears the tab and writes the header and every row.
func (c *Client) Save(ctx context.Context, l core.Ledger) error {
	if c.svc == nil {
		return &core.StorageWriteError{Source: c.source(), Err: errors.New("sheets service not initialized")}
	}
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.dataRange(), &gsheet.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return &core.StorageWriteError{Source: c.source(), Err: fmt.Errorf("clear %s: %w", c.dataRange(), err)}
	}

	rows := store.EncodeRows(l)
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	rng := fmt.Sprintf("%s!A1:%s%d", c.sheet, lastColumn, len(rows))
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return &core.StorageWriteError{Source: c.source(), Err: fmt.Errorf("update %s: %w", rng, err)}
	}

	slog.InfoContext(ctx, "Ledger saved to Google Sheets", "sheet", c.sheet, "rows", l.Len())
	return nil
}

// toStrings renders cell values. The API omits trailing empty cells, so a
// data row shorter than the header is padded.
func toStrings(in []any) []string {
	n := len(in)
	if n < len(store.Header) {
		n = len(store.Header)
	}
	out := make([]string, n)
	for i, v := range in {
		switch x := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case nil:
		default:
			out[i] = fmt.Sprint(x)
		}
	}
	return out
}

// trimBlankTail drops fully empty rows at the end of the range.
func trimBlankTail(rows [][]string) [][]string {
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
