package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"media-report/internal/config"
	"media-report/internal/logger"
	"media-report/internal/model"

	sdk "github.com/matrixorigin/moi-go-sdk"
	"github.com/sony/gobreaker"
)

// reportMapping is the column layout of the mirrored reports table.
var reportMapping = []sdk.FileAndTableColumnMapping{
	{TableColumn: "id", Column: "id", ColNumInFile: 1},
	{TableColumn: "username", Column: "username", ColNumInFile: 2},
	{TableColumn: "team", Column: "team", ColNumInFile: 3},
	{TableColumn: "shift", Column: "shift", ColNumInFile: 4},
	{TableColumn: "report_date", Column: "report_date", ColNumInFile: 5},
	{TableColumn: "is_late", Column: "is_late", ColNumInFile: 6},
	{TableColumn: "notes", Column: "notes", ColNumInFile: 7},
	{TableColumn: "tasks", Column: "tasks", ColNumInFile: 8},
	{TableColumn: "created_at", Column: "created_at", ColNumInFile: 9},
}

// CatalogSync mirrors submitted reports into a MOI catalog table so they
// can be queried there in natural language.
type CatalogSync struct {
	raw        *sdk.RawClient
	sdk        *sdk.SDKClient
	databaseID sdk.DatabaseID
	tableID    sdk.TableID
	cb         *gobreaker.CircuitBreaker
}

func NewCatalogSync(raw *sdk.RawClient, cfg config.MOIConfig) *CatalogSync {
	return &CatalogSync{
		raw:        raw,
		sdk:        sdk.NewSDKClient(raw),
		databaseID: sdk.DatabaseID(cfg.DatabaseID),
		tableID:    sdk.TableID(cfg.ReportsTableID),
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "moi-catalog",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("catalog.breaker", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// SyncReport appends one report row to the mirror table. Errors are logged
// only; the mirror never fails a submission.
func (s *CatalogSync) SyncReport(ctx context.Context, r *model.Report) {
	if s == nil {
		return
	}
	row, err := reportRow(r)
	if err != nil {
		logger.Warn("catalog.sync", "report", r.ID, "err", err)
		return
	}
	fileName := fmt.Sprintf("report_%d.csv", r.ID)
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.importCSV(ctx, row, fileName)
	})
	if err != nil {
		logger.Warn("catalog.sync", "report", r.ID, "err", err)
		return
	}
	logger.Info("catalog.sync", "report", r.ID, "table", s.tableID)
}

func reportRow(r *model.Report) (string, error) {
	if r.User == nil {
		return "", errors.New("report without user")
	}
	tasks, err := json.Marshal(r.Tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	late := "0"
	if r.IsLate() {
		late = "1"
	}
	fields := []string{
		fmt.Sprint(r.ID),
		esc(r.User.Username),
		esc(string(r.User.Team)),
		esc(string(r.Shift)),
		r.EffectiveDate().String(),
		late,
		esc(r.Notes),
		esc(string(tasks)),
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	return strings.Join(fields, ",") + "\n", nil
}

func (s *CatalogSync) importCSV(ctx context.Context, csv, fileName string) error {
	resp, err := s.raw.UploadLocalFile(ctx, bytes.NewReader([]byte(csv)), fileName, []sdk.FileMeta{{Filename: fileName, Path: "/"}})
	if err != nil {
		return fmt.Errorf("upload %s: %w", fileName, err)
	}
	if len(resp.ConnFileIds) == 0 {
		return fmt.Errorf("upload %s: no conn_file_ids", fileName)
	}
	_, err = s.sdk.ImportLocalFileToTable(ctx, &sdk.TableConfig{
		ConnFileIDs:      resp.ConnFileIds,
		NewTable:         false,
		DatabaseID:       s.databaseID,
		TableID:          s.tableID,
		IsColumnName:     false,
		RowStart:         1,
		Conflict:         1,
		ExistedTable:     reportMapping,
		ExistedTableOpts: sdk.ExistedTableOptions{Method: sdk.ExistedTableOptionAppend},
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", fileName, err)
	}
	return nil
}

func esc(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
