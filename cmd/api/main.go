package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/namorima/notion-todo/cmd/api/commands"
)

// @title notion-manager API
// @version 1.0
// @description Personal todo and calendar manager backed by Notion databases and a Postgres holiday table.

// @contact.name notion-manager
// @contact.url https://github.com/namorima/notion-todo

// @license.name MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /login.

func main() {
	rootCmd := &cobra.Command{
		Use:   "notion-manager",
		Short: "Notion todo and calendar manager",
		Long:  `notion-manager serves a small API over a Notion todo database, a Notion calendar database and a table of public holidays, with a terminal dashboard and a console todo menu on top.`,
	}

	rootCmd.AddCommand(
		commands.NewServeCommand(),
		commands.NewMigrateCommand(),
		commands.NewHolidaysCommand(),
		commands.NewTodoCommand(),
		commands.NewUICommand(),
		commands.NewRemindCommand(),
		commands.NewHashPasswordCommand(),
		commands.NewVersionCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
