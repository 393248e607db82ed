package main

import (
	"log"
	"os"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/admin"
	"github.com/ifag/portal/core/schedule"
	"github.com/ifag/portal/core/student"
	logsvc "github.com/ifag/portal/services/logger"
	"github.com/ifag/portal/storage/database"
	sqlxrepos "github.com/ifag/portal/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	sqlDB, err := database.Open(conf.Database)
	if err != nil {
		logger.Fatal("setting up database", err)
	}
	defer sqlDB.Close()
	db := sqlxrepos.NewDB(sqlDB)

	// start CLI
	scheduleSvc := schedule.NewService(sqlxrepos.NewScheduleRepository(db))
	cli := commandLine{
		conf: conf,
		out:  os.Stdout,
		db:   sqlDB,
		studentSvc: student.NewService(
			sqlxrepos.NewStudentRepository(db),
			scheduleSvc,
			student.OptionsFromConfig(conf.Dashboard),
		),
		adminSvc: admin.NewService(sqlxrepos.NewAdminRepository(db), admin.OptionsFromConfig(conf.Dashboard)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		sqlDB.Close()
		os.Exit(1)
	}
}
