package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/brandreach/ambassador-ui-api/config"
	"github.com/brandreach/ambassador-ui-api/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Redis  redis.UniversalClient
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	client, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{Config: cfg.Redis})
	if err != nil {
		logger.Error("connect redis", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal infrastructure failure to callers
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.Error("close redis failed", "error", cerr)
		}
	}()

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Redis:  client,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.Error("command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"sessions": {
			name:        "sessions",
			description: "List active dashboard sessions",
			run:         runSessionList,
		},
		"revoke": {
			name:        "revoke",
			description: "Revoke one session by ID (forces re-login)",
			run:         runSessionRevoke,
		},
		"revoke-all": {
			name:        "revoke-all",
			description: "Revoke every active session",
			run:         runSessionRevokeAll,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: ambassador-ui-admin <command> [args]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", name, cmds[name].description)
	}
}
