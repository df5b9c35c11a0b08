package main

import (
	"porterquote/cmd/porterquote/commands"
	"porterquote/lib/util/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
