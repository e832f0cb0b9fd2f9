package main

import (
	"os"

	"github.com/yungbote/assetdesk-backend/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
