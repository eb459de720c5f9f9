package main

import (
	"context"
	"fmt"
	"strings"

	"media-report/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

// reportColumns matches the CSV rows written by the report mirror.
var reportColumns = []sdk.Column{
	{Name: "id", Type: "INT", IsPk: true, Comment: "report id in the reporting service"},
	{Name: "username", Type: "VARCHAR(150)", Comment: "login name of the submitter"},
	{Name: "team", Type: "VARCHAR(50)", Comment: "team of the submitter, e.g. video_editor, reporter"},
	{Name: "shift", Type: "VARCHAR(20)", Comment: "shift code, e.g. 9_5_30 or wfh"},
	{Name: "report_date", Type: "DATE", Comment: "day the report covers (custom date when given)"},
	{Name: "is_late", Type: "TINYINT", Comment: "1 when the report was filed after the day it covers"},
	{Name: "notes", Type: "TEXT", Comment: "free text notes"},
	{Name: "tasks", Type: "TEXT", Comment: "JSON object of task key to count"},
	{Name: "created_at", Type: "DATETIME", Comment: "submission time"},
}

func initCatalog(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	dbID, err := ensureDatabase(ctx, client, catalogID, dbName)
	if err != nil {
		return 0, err
	}

	resp, err := client.CreateTable(ctx, &sdk.TableCreateRequest{
		DatabaseID: dbID,
		Name:       "reports",
		Columns:    reportColumns,
		Comment:    "one row per submitted daily report",
	})
	switch {
	case err != nil && isDuplicate(err):
		logger.Info("catalog: table already exists, skipping", "name", "reports")
	case err != nil:
		return 0, fmt.Errorf("create table reports: %w", err)
	default:
		logger.Info("catalog: table created", "name", "reports", "id", resp.TableID)
	}
	return dbID, nil
}

func ensureDatabase(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	dbResp, err := client.CreateDatabase(ctx, &sdk.DatabaseCreateRequest{
		CatalogID:    catalogID,
		DatabaseName: dbName,
		Comment:      "media team daily reports",
	})
	if err != nil {
		if isDuplicate(err) {
			logger.Info("catalog: database already exists, discovering ID", "name", dbName)
			return discoverDatabaseID(ctx, client, catalogID, dbName)
		}
		return 0, fmt.Errorf("create database: %w", err)
	}
	logger.Info("catalog: database created", "id", dbResp.DatabaseID)
	return dbResp.DatabaseID, nil
}

func discoverDatabaseID(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	resp, err := client.ListDatabases(ctx, &sdk.DatabaseListRequest{CatalogID: catalogID})
	if err != nil {
		return 0, fmt.Errorf("list databases: %w", err)
	}
	for _, db := range resp.List {
		if db.DatabaseName == dbName {
			logger.Info("catalog: database discovered", "id", db.DatabaseID)
			return db.DatabaseID, nil
		}
	}
	return 0, fmt.Errorf("database %s not found in catalog %d", dbName, catalogID)
}

func isDuplicate(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "already exist") || strings.Contains(s, "conflict")
}
