// Package sheets appends meeting rows to a Google Sheets worksheet.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"meeting_tracker/internal/config"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Mirror appends rows to the first worksheet of a spreadsheet
type Mirror struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetTitle    string
	timeout       time.Duration
}

// New authenticates with the service account file and resolves the target worksheet.
func New(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger) (*Mirror, error) {
	creds, err := loadCredentials(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return open(ctx, cfg, logger,
		option.WithCredentialsJSON(creds),
		option.WithScopes(gsheets.SpreadsheetsScope, drive.DriveReadonlyScope),
	)
}

func open(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger, opts ...option.ClientOption) (*Mirror, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	spreadsheetID := cfg.SpreadsheetID
	if spreadsheetID == "" {
		driveSvc, err := drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create drive client: %w", err)
		}
		spreadsheetID, err = findSpreadsheet(ctx, driveSvc, cfg.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	title, err := firstSheetTitle(ctx, svc, spreadsheetID)
	if err != nil {
		return nil, err
	}

	logger.Info("Google Sheet opened", "spreadsheet_id", spreadsheetID, "worksheet", title)
	return &Mirror{svc: svc, spreadsheetID: spreadsheetID, sheetTitle: title, timeout: cfg.Timeout}, nil
}

// AppendRow appends one row after the last row of the worksheet
func (m *Mirror) AppendRow(ctx context.Context, row []string) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := m.svc.Spreadsheets.Values.
		Append(m.spreadsheetID, a1Range(m.sheetTitle), &gsheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to sheet %q: %w", m.sheetTitle, err)
	}
	return nil
}

func a1Range(title string) string {
	return fmt.Sprintf("'%s'!A1", strings.ReplaceAll(title, "'", "''"))
}

func findSpreadsheet(ctx context.Context, svc *drive.Service, name string) (string, error) {
	if name == "" {
		return "", errors.New("spreadsheet name is empty")
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)
	list, err := svc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search spreadsheet %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found or not shared with the service account", name)
	}
	return list.Files[0].Id, nil
}

func firstSheetTitle(ctx context.Context, svc *gsheets.Service, spreadsheetID string) (string, error) {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no worksheets", spreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// loadCredentials reads a service account file, repairing private keys whose
// newlines were stored as literal "\n" sequences.
func loadCredentials(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("service account file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("service account path %s is a directory, not a file", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	var account map[string]interface{}
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("service account file is not valid JSON: %w", err)
	}
	key, ok := account["private_key"].(string)
	if !ok {
		return raw, nil
	}
	account["private_key"] = strings.ReplaceAll(key, `\n`, "\n")

	fixed, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}
	return fixed, nil
}
