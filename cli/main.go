package main

import (
	"github.com/apex/log"

	"github.com/snip-cli/snip/cli/cmd"
	"github.com/snip-cli/snip/cli/util"
	"github.com/snip-cli/snip/cli/version"
)

func main() {
	defer func() {
		// A panic is reported with the version and the stack trace.
		if r := recover(); r != nil {
			log.Fatalf("%s", util.InternalError("Unhandled internal error: %s",
				version.GetVersion, r))
		}
	}()

	cmd.Execute()
}
