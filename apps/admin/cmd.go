package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/admin"
	"github.com/ifag/portal/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	out        io.Writer
	db         core.DBPinger
	studentSvc student.Service
	adminSvc   admin.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  token -student ID | -admin USERNAME - mint an API token")
	fmt.Fprintln(cli.out, "  dashboard -student ID - dump a student dashboard")
	fmt.Fprintln(cli.out, "  stats - dump the administration statistics")
	fmt.Fprintln(cli.out, "  overview [-type REQUEST_TYPE] - dump the payments & requests overview")
	fmt.Fprintln(cli.out, "  ping - check the database connection")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenStudent := tokenCmd.Int64("student", 0, "The student ID the token is issued to.")
	tokenAdmin := tokenCmd.String("admin", "", "The admin username the token is issued to.")

	dashboardCmd := flag.NewFlagSet("dashboard", flag.ExitOnError)
	dashboardStudent := dashboardCmd.Int64("student", 0, "The student ID.")

	overviewCmd := flag.NewFlagSet("overview", flag.ExitOnError)
	overviewType := overviewCmd.String("type", "", "Only count pending requests of this type.")

	switch args[1] {
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if (*tokenStudent <= 0) == (*tokenAdmin == "") { // exactly one of them
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenStudent, *tokenAdmin)
	case "dashboard":
		if err := dashboardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *dashboardStudent <= 0 {
			dashboardCmd.Usage()
			return errHelp
		}
		return cli.dashboard(*dashboardStudent)
	case "stats":
		return cli.stats()
	case "overview":
		if err := overviewCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.overview(*overviewType)
	case "ping":
		return cli.ping()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) print(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
