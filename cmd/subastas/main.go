package main

import (
	"context"

	"subastas-ingest/cmd/subastas/commands"
	"subastas-ingest/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
