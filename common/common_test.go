package common

import (
	"bytes"
	"errors"
	"testing"

	"go-ledger/model"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
)

func TestValidate_CreateAccountRequest(t *testing.T) {
	valid := model.CreateAccountRequest{Name: "Alice", PIN: "1234", Type: "SAVINGS", InitialDeposit: "100.50"}
	assert.NoError(t, Validate(valid))

	noDeposit := valid
	noDeposit.InitialDeposit = ""
	assert.NoError(t, Validate(noDeposit))

	tests := []struct {
		name    string
		mutate  func(r *model.CreateAccountRequest)
		wantMsg string
	}{
		{"short pin", func(r *model.CreateAccountRequest) { r.PIN = "123" }, "PIN must be exactly 4 characters"},
		{"letters in pin", func(r *model.CreateAccountRequest) { r.PIN = "12a4" }, "PIN must contain digits only"},
		{"signed pin", func(r *model.CreateAccountRequest) { r.PIN = "+123" }, "PIN must contain digits only"},
		{"bad type", func(r *model.CreateAccountRequest) { r.Type = "GOLD" }, "Type must be one of: SAVINGS CHECKING"},
		{"missing name", func(r *model.CreateAccountRequest) { r.Name = "" }, "Name is required"},
		{"newline in name", func(r *model.CreateAccountRequest) { r.Name = "x\nAAAA0001" }, "Name must not contain control characters"},
		{"carriage return in name", func(r *model.CreateAccountRequest) { r.Name = "x\rY" }, "Name must not contain control characters"},
		{"bad deposit", func(r *model.CreateAccountRequest) { r.InitialDeposit = "ten" }, "InitialDeposit must be a number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := Validate(req)
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

func TestValidate_AmountRequest(t *testing.T) {
	req := model.AmountRequest{
		CredentialsRequest: model.CredentialsRequest{AccountNumber: "AB12CD34", PIN: "1234"},
		Amount:             "12.5",
	}
	assert.NoError(t, Validate(req))

	req.Amount = "1e3"
	assert.Error(t, Validate(req))

	req.Amount = "5"
	req.AccountNumber = ""
	assert.EqualError(t, Validate(req), "AccountNumber is required")
}

func TestAppError_Send(t *testing.T) {
	var out bytes.Buffer
	cause := errors.New("disk on fire")
	appErr := NewAppError(subcommands.ExitFailure, "Could not save ledger", cause)

	code := appErr.Send(&out)

	assert.Equal(t, subcommands.ExitFailure, code)
	assert.Equal(t, "Error: Could not save ledger\n", out.String())
	assert.ErrorIs(t, appErr, cause)
}
