// cmd/main.go
package main

import (
	"os"

	"go-ledger/app"
)

func main() {
	os.Exit(app.Run())
}
