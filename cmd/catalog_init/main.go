// Command catalog_init prepares the MOI catalog that submitted reports are
// mirrored into: the database, the reports table and NL2SQL knowledge.
package main

import (
	"context"
	"flag"
	"log"

	"media-report/internal/config"
	"media-report/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	client, err := cfg.NewRawClient()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	catalogID := sdk.CatalogID(cfg.MOI.CatalogID)
	if catalogID == 0 {
		catalogID = 1
	}

	dbID, err := initCatalog(ctx, client, catalogID, cfg.Database.Name)
	if err != nil {
		log.Fatal("catalog init failed:", err)
	}

	if err := initKnowledge(ctx, client); err != nil {
		log.Fatal("knowledge init failed:", err)
	}

	logger.Info("catalog ready; set moi.database_id and moi.reports_table_id", "database_id", dbID)
}
