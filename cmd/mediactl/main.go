// Command mediactl administers the reporting database from a shell: user
// accounts, dynamic fields, notices and spreadsheet exports.
package main

import (
	"fmt"
	"os"

	"media-report/internal/catalog"
	"media-report/internal/config"
	"media-report/internal/database"
	"media-report/internal/logger"
	"media-report/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type app struct {
	configFile string
	cfg        *config.Config
	db         *gorm.DB
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load(a.configFile)
	logger.Init(a.cfg.Log)
	db, err := a.cfg.OpenGormDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *app) close(*cobra.Command, []string) error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *app) users() *service.UserService     { return service.NewUserService(a.db) }
func (a *app) fields() *service.FieldService   { return service.NewFieldService(a.db) }
func (a *app) notices() *service.NoticeService { return service.NewNoticeService(a.db) }
func (a *app) reports() *service.ReportService { return service.NewReportService(a.db) }

func (a *app) catalog() (*catalog.Catalog, error) {
	table, err := catalog.DefaultTable().WithOverrides(a.cfg.Teams)
	if err != nil {
		return nil, err
	}
	return catalog.New(table, a.db), nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:                "mediactl",
		Short:              "Administer the media daily reporting service",
		SilenceUsage:       true,
		PersistentPreRunE:  a.open,
		PersistentPostRunE: a.close,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path (e.g. etc/config-dev.yaml)")
	root.AddCommand(userCmd(a), fieldCmd(a), noticeCmd(a), exportCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
