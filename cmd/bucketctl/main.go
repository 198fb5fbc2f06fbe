package main

import (
	"os"

	"github.com/greenstone-io/bucket-backup/cmd/bucketctl/cli"
)

func main() {
	os.Exit(cli.Execute())
}
