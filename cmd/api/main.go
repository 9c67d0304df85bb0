package main

import (
	"fmt"
	"log/slog"
	"os"

	"land-valuation/internal/api"
	"land-valuation/internal/config"
	"land-valuation/internal/logging"
)

func main() {
	env := config.LoadEnv()
	logging.Setup(os.Stdout, env.LogLevel)

	router := api.NewRouter(env)

	addr := fmt.Sprintf(":%s", env.Port)
	slog.Info("starting API server", "addr", addr, "mode", env.Mode, "project_dir", env.ProjectDir)
	if err := router.Run(addr); err != nil {
		logging.Fatal("failed to start server", "error", err)
	}
}
