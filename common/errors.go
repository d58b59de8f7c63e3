package common

import (
	"fmt"
	"io"

	"go-ledger/logger"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// AppError is a failure ready to be shown to the user. Err, when set, is the
// internal cause and only goes to the log.
type AppError struct {
	Code    subcommands.ExitStatus
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code subcommands.ExitStatus, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send logs the internal cause, prints the message to w and returns the exit
// status for the command.
func (e *AppError) Send(w io.Writer) subcommands.ExitStatus {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"exit_status":    int(e.Code),
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	fmt.Fprintln(w, "Error: "+e.Message)
	return e.Code
}
