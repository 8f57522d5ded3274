// Package holidays loads public holiday seasons from officeholidays.com and
// from the JSON seed files produced by the holidays command.
package holidays

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// HTTPClient is the subset of *http.Client used by the scraper.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OfficeHolidaysSource scrapes the regional holiday table.
type OfficeHolidaysSource struct {
	baseURL string
	http    HTTPClient
	logger  *logger.Logger
}

// NewOfficeHolidaysSource creates a scraper for the given regional page URL.
func NewOfficeHolidaysSource(baseURL string, client HTTPClient, log *logger.Logger) ports.HolidaySource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OfficeHolidaysSource{
		baseURL: baseURL,
		http:    client,
		logger:  log.WithComponent("officeholidays"),
	}
}

// Fetch returns every holiday listed for state in year.
func (s *OfficeHolidaysSource) Fetch(ctx context.Context, state string, year int) ([]*entities.Holiday, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	q := u.Query()
	q.Set("list_year", strconv.Itoa(year))
	q.Set("list_region", state)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "notion-manager/1.0")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.UpstreamError{
			Service:    "officeholidays",
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse holiday page: %w", err)
	}

	holidays := parseTable(doc, state, year)
	s.logger.Infow("Fetched holidays", "state", state, "year", year, "count", len(holidays))
	return holidays, nil
}

func parseTable(doc *goquery.Document, state string, year int) []*entities.Holiday {
	holidays := []*entities.Holiday{}
	doc.Find(".list-table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		dateText := strings.TrimSpace(cells.Eq(1).Find("span").Text())
		name := strings.TrimSpace(cells.Eq(2).Find("a").Text())
		if dateText == "" || name == "" {
			return
		}

		date, ok := parseListDate(dateText, year)
		if !ok {
			return
		}
		holidays = append(holidays, &entities.Holiday{
			Date:  date,
			Name:  name,
			State: state,
			Year:  year,
		})
	})
	return holidays
}

// parseListDate reads "Friday 01 January" as a date in year.
func parseListDate(text string, year int) (entities.Date, bool) {
	parts := strings.Fields(text)
	if len(parts) < 3 {
		return entities.Date{}, false
	}
	t, err := time.Parse("2 January 2006", fmt.Sprintf("%s %s %d", parts[1], parts[2], year))
	if err != nil {
		return entities.Date{}, false
	}
	return entities.DateOf(t), true
}
