// file: model/request.go

package model

// CreateAccountRequest defines the input for opening a new account.
// It includes validation tags so the command layer can reject bad input
// before it reaches the service.
type CreateAccountRequest struct {
	Name           string `validate:"required,max=100,nocontrol"`
	PIN            string `validate:"required,len=4,number"`
	Type           string `validate:"required,oneof=SAVINGS CHECKING"`
	InitialDeposit string `validate:"omitempty,numeric"`
}

// CredentialsRequest identifies and authenticates an existing account.
type CredentialsRequest struct {
	AccountNumber string `validate:"required"`
	PIN           string `validate:"required"`
}

// AmountRequest is a CredentialsRequest carrying a money amount.
type AmountRequest struct {
	CredentialsRequest
	Amount string `validate:"required,numeric"`
}
