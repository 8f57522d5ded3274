package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/namorima/notion-todo/internal/adapters/holidays"
	"github.com/namorima/notion-todo/internal/app"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/ports"
)

// NewHolidaysCommand creates the holiday maintenance command
func NewHolidaysCommand() *cobra.Command {
	holidaysCmd := &cobra.Command{
		Use:   "holidays",
		Short: "Holiday table commands",
		Long:  "Scrape public holidays into seed files and load them into the holiday table",
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Scrape one season into a seed file",
		Run: func(cmd *cobra.Command, args []string) {
			state, year, cfg := seasonFlags(cmd)
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = cfg.Holidays.SeedFile
			}
			runFetch(cmd.Context(), cfg, state, year, out)
		},
	}
	addSeasonFlags(fetchCmd)
	fetchCmd.Flags().String("out", "", "Seed file to write (default holidays.seed_file)")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Scrape one season and replace it in the database",
		Run: func(cmd *cobra.Command, args []string) {
			state, year, cfg := seasonFlags(cmd)
			withApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) {
				n, err := a.Holidays.RefreshSeason(ctx, state, year)
				if err != nil {
					log.Fatalf("Failed to refresh holidays: %v", err)
				}
				fmt.Printf("Stored %d holidays for %s %d\n", n, state, year)
			})
		},
	}
	addSeasonFlags(refreshCmd)

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace a season in the database with a seed file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadServerConfig()
			path := cfg.Holidays.SeedFile
			if len(args) == 1 {
				path = args[0]
			}

			seed, err := holidays.ReadSeedFile(path)
			if err != nil {
				log.Fatalf("Failed to read seed file: %v", err)
			}

			withApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) {
				n, err := a.Holidays.ImportSeed(ctx, seed)
				if err != nil {
					log.Fatalf("Failed to import holidays: %v", err)
				}
				fmt.Printf("Imported %d holidays for %s %d from %s\n", n, seed.State, seed.Year, path)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored holidays",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadServerConfig()
			var filter ports.HolidayFilter
			if cmd.Flags().Changed("year") {
				year, _ := cmd.Flags().GetInt("year")
				filter.Year = &year
			}
			if cmd.Flags().Changed("state") {
				state, _ := cmd.Flags().GetString("state")
				filter.State = &state
			}

			withApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) {
				list, err := a.Holidays.ListHolidays(ctx, filter)
				if err != nil {
					log.Fatalf("Failed to list holidays: %v", err)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tNAME\tSTATE")
				for _, h := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h.ID, h.Date, h.Name, h.State)
				}
				w.Flush()
				fmt.Printf("%d holidays\n", len(list))
			})
		},
	}
	listCmd.Flags().Int("year", 0, "Only this year")
	listCmd.Flags().String("state", "", "Only this state")

	holidaysCmd.AddCommand(fetchCmd, refreshCmd, importCmd, listCmd)
	return holidaysCmd
}

func addSeasonFlags(cmd *cobra.Command) {
	cmd.Flags().String("state", "", "State to scrape (default holidays.state)")
	cmd.Flags().Int("year", 0, "Year to scrape (default current year)")
}

func seasonFlags(cmd *cobra.Command) (string, int, *config.Config) {
	cfg := loadServerConfig()
	state, _ := cmd.Flags().GetString("state")
	if state == "" {
		state = cfg.Holidays.State
	}
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = currentYear(cfg)
	}
	return state, year, cfg
}

func loadServerConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func runFetch(ctx context.Context, cfg *config.Config, state string, year int, out string) {
	if cfg.Holidays.SourceURL == "" {
		log.Fatal("No holiday source configured, set HOLIDAY_SOURCE_URL")
	}

	appLogger := mustLogger(cfg)
	defer appLogger.Close()

	source := holidays.NewOfficeHolidaysSource(cfg.Holidays.SourceURL, nil, appLogger)
	list, err := source.Fetch(ctx, state, year)
	if err != nil {
		log.Fatalf("Failed to fetch holidays: %v", err)
	}

	if err := holidays.WriteSeedFile(out, holidays.SeedFromHolidays(state, year, list)); err != nil {
		log.Fatalf("Failed to write seed file: %v", err)
	}
	fmt.Printf("Wrote %d holidays for %s %d to %s\n", len(list), state, year, out)
}

func withApp(ctx context.Context, cfg *config.Config, fn func(context.Context, *app.App)) {
	appLogger := mustLogger(cfg)
	defer appLogger.Close()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	fn(ctx, a)
}
