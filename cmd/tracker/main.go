package main

import (
	"context"

	"cstracker-backend/cmd/tracker/commands"
	"cstracker-backend/lib/serviceutil"
	"cstracker-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	t, err := telemetry.SetupFromEnv(ctx, "tracker-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
