package main

import (
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/ifag/portal/apps/api/echo"
)

func (cli *commandLine) token(studentID int64, username string) error {
	claims := echoapi.GetAdminClaims(cli.conf, username)
	if studentID > 0 {
		claims = echoapi.GetStudentClaims(cli.conf, studentID)
	}
	token, err := echoapi.GenerateToken(claims, cli.conf.SecretKey)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	_, err = fmt.Fprintln(cli.out, token)
	return err
}
