// Command topics manages a local catalog of reference links grouped by topic.
package main

import (
	"os"

	"github.com/mesh-intelligence/topics/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
