package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/ifag/portal/storage/database"
)

func (cli *commandLine) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Ping(ctx, cli.db, 3); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	_, err := fmt.Fprintln(cli.out, "ok")
	return err
}
