package commands

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/namorima/notion-todo/internal/adapters/notify"
	"github.com/namorima/notion-todo/internal/app"
	"github.com/namorima/notion-todo/internal/application/services"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
)

// Version information, set at build time via -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewRemindCommand creates the remind command
func NewRemindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print or publish today's todo reminders",
		Long:  "List todos due today and overdue todos. With --publish the message is sent to the configured SNS topic.",
		Run: func(cmd *cobra.Command, args []string) {
			publish, _ := cmd.Flags().GetBool("publish")
			runRemind(cmd.Context(), publish)
		},
	}
	cmd.Flags().Bool("publish", false, "Publish the reminders instead of printing them")
	return cmd
}

// NewHashPasswordCommand creates the hash-password command
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for APP_PASSWORD",
		Long:  "Hash the shared login password. Without an argument the password is read from standard input.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				password = readPassword()
			}
			if password == "" {
				log.Fatal("Password is required")
			}

			hash, err := services.HashPassword(password)
			if err != nil {
				log.Fatalf("Failed to hash password: %v", err)
			}
			fmt.Println(hash)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print notion-manager version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("notion-manager %s\n", Version)
			fmt.Printf("Build Date: %s\n", BuildDate)
			fmt.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}

func runRemind(ctx context.Context, publish bool) {
	cfg, appLogger := mustLoad()
	defer appLogger.Close()

	a, err := app.New(ctx, cfg, appLogger, app.WithoutDatabase())
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	if !publish {
		r, err := a.Reminders.Due(ctx)
		if err != nil {
			log.Fatalf("Failed to load todos: %v", err)
		}
		if r.Empty() {
			fmt.Println("Nothing due today.")
			return
		}
		fmt.Print(r.Message())
		return
	}

	if !cfg.Notify.Enabled {
		log.Fatal("Notifications are disabled, set NOTIFY_ENABLED=true")
	}
	notifier, err := notify.NewFromConfig(ctx, cfg.Notify, appLogger)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	reminders := services.NewReminderService(a.TodoRepo, notifier, a.Location, appLogger.WithComponent("reminders"))
	sent, err := reminders.Notify(ctx)
	if err != nil {
		log.Fatalf("Failed to send reminders: %v", err)
	}
	if sent {
		fmt.Println("Reminders published")
	} else {
		fmt.Println("Nothing due today.")
	}
}

// mustLoad loads the server configuration and its logger
func mustLoad() (*config.Config, *logger.Logger) {
	cfg := loadServerConfig()
	return cfg, mustLogger(cfg)
}

func mustLogger(cfg *config.Config) *logger.Logger {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return appLogger
}

func currentYear(cfg *config.Config) int {
	loc, err := cfg.App.Location()
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc).Year()
}

func readPassword() string {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
