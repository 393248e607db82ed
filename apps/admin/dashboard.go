package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ifag/portal/core/admin"
)

func (cli *commandLine) dashboard(studentID int64) error {
	dash, err := cli.studentSvc.GetDashboard(context.Background(), studentID)
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return cli.print(dash)
}

func (cli *commandLine) stats() error {
	stats, err := cli.adminSvc.GetStats(context.Background())
	if err != nil {
		return errors.Wrap(err, "loading stats")
	}
	return cli.print(stats)
}

func (cli *commandLine) overview(requestType string) error {
	ov, err := cli.adminSvc.GetOverview(context.Background(), admin.OverviewFilter{RequestType: requestType})
	if err != nil {
		return errors.Wrap(err, "loading overview")
	}
	return cli.print(ov)
}
