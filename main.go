package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/taskagile/internal/app"
)

// @title           TaskAgile Registration API
// @version         1.0
// @description     TaskAgile validates sign-up payloads and hands accepted ones to account creation.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application := app.New()
	wait := application.Start()
	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
