package commands

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/namorima/notion-todo/internal/adapters/notion"
	"github.com/namorima/notion-todo/internal/application/services"
	"github.com/namorima/notion-todo/internal/cli"
	"github.com/namorima/notion-todo/internal/client"
	"github.com/namorima/notion-todo/internal/client/tui"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
)

// NewTodoCommand creates the console todo manager command
func NewTodoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "todo",
		Short: "Manage todos from the console",
		Long:  "Interactive menu that reads and writes the Notion todo database directly, without the API server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadClientConfig()
			if cfg.Notion.APIKey == "" || cfg.Notion.TodoDatabaseID == "" {
				log.Fatal("NOTION_API_KEY and NOTION_TODO_DATABASE_ID are required")
			}

			loc, err := cfg.App.Location()
			if err != nil {
				log.Fatalf("Invalid timezone: %v", err)
			}

			appLogger := clientLogger(cfg)
			defer appLogger.Close()

			notionClient := notion.NewClient(cfg.Notion, appLogger, notion.WithLocation(loc))
			todos := services.NewTodoService(notion.NewTodoRepository(notionClient, cfg.Notion.TodoDatabaseID), loc, appLogger.WithComponent("todos"))

			console := cli.NewConsole(todos, os.Stdin, os.Stdout, loc, cfg.Client.PageSize, appLogger)
			if err := console.Run(cmd.Context()); err != nil {
				log.Fatalf("Console failed: %v", err)
			}
		},
	}
}

// NewUICommand creates the terminal dashboard command
func NewUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal dashboard",
		Long:  "Todo list, month calendar and holiday table backed by a running notion-manager API",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadClientConfig()
			if url, _ := cmd.Flags().GetString("url"); url != "" {
				cfg.Client.BaseURL = url
			}

			loc, err := cfg.App.Location()
			if err != nil {
				log.Fatalf("Invalid timezone: %v", err)
			}
			weekend, err := cfg.Client.Weekend()
			if err != nil {
				log.Fatalf("Invalid weekend days: %v", err)
			}

			appLogger := clientLogger(cfg)
			defer appLogger.Close()

			api := client.NewAPIClient(cfg.Client.BaseURL, nil)
			engine := client.NewEngine(api, client.NewFileTokenStore(cfg.Client.TokenFile), loc, appLogger)
			if err := tui.Run(cmd.Context(), engine, weekend); err != nil {
				log.Fatalf("Dashboard failed: %v", err)
			}
		},
	}
	cmd.Flags().String("url", "", "API base URL (default client.base_url)")
	return cmd
}

func loadClientConfig() *config.Config {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// clientLogger keeps the terminal clear: it logs only when a log file is set
func clientLogger(cfg *config.Config) *logger.Logger {
	if cfg.Logger.Output != "file" || cfg.Logger.Filename == "" {
		return logger.NewNop()
	}
	return mustLogger(cfg)
}
