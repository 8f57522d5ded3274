// Package cli is the console variant of the todo manager: a menu loop that
// talks to the todo database directly, without the HTTP server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/namorima/notion-todo/internal/application/services"
	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// DefaultPageSize is the number of todos per page.
const DefaultPageSize = 20

type styles struct {
	title, muted, accent, success, warn, fail, done, important lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		muted:     r.NewStyle().Faint(true),
		accent:    r.NewStyle().Foreground(lipgloss.Color("12")),
		success:   r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:      r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:      r.NewStyle().Foreground(lipgloss.Color("9")),
		done:      r.NewStyle().Faint(true).Strikethrough(true),
		important: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Console is the interactive menu loop.
type Console struct {
	todos    ports.TodoService
	in       *bufio.Scanner
	out      io.Writer
	location *time.Location
	pageSize int
	logger   *logger.Logger
	now      func() time.Time
	st       styles

	items []*entities.Todo
	page  int
}

func NewConsole(todos ports.TodoService, in io.Reader, out io.Writer, location *time.Location, pageSize int, logger *logger.Logger) *Console {
	if location == nil {
		location = time.Local
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Console{
		todos:    todos,
		in:       bufio.NewScanner(in),
		out:      out,
		location: location,
		pageSize: pageSize,
		logger:   logger.WithComponent("console"),
		now:      time.Now,
		st:       newStyles(out),
	}
}

// Run loads the todos, prints reminders and serves the menu until exit or
// end of input.
func (c *Console) Run(ctx context.Context) error {
	if err := c.reload(ctx); err != nil {
		return fmt.Errorf("load todos: %w", err)
	}

	c.printReminders()
	c.render()

	for {
		c.printOptions()
		line, ok := c.ask("Select option (or #done <number>): ")
		if !ok {
			return nil
		}
		if quit := c.handle(ctx, line); quit {
			fmt.Fprintln(c.out, c.st.success.Render("👋 Goodbye!"))
			return nil
		}
	}
}

func (c *Console) handle(ctx context.Context, line string) bool {
	if rest, ok := strings.CutPrefix(line, "#done"); ok {
		c.markDone(ctx, strings.TrimSpace(rest))
		return false
	}

	switch line {
	case "2":
		c.add(ctx, false)
	case "3":
		c.add(ctx, true)
	case ">":
		if c.page >= c.totalPages()-1 {
			c.fail("Already on the last page!")
			return false
		}
		c.page++
		c.render()
	case "<":
		if c.page == 0 {
			c.fail("Already on the first page!")
			return false
		}
		c.page--
		c.render()
	case "6":
		return true
	default:
		c.fail("Invalid option!")
	}
	return false
}

func (c *Console) add(ctx context.Context, withDue bool) {
	heading := "➕ ADD TODO"
	if withDue {
		heading = "📅 ADD TODO WITH DUE DATE"
	}
	fmt.Fprintln(c.out, c.st.title.Render(heading))

	name, ok := c.ask("📝 Task name: ")
	if !ok {
		return
	}
	if name == "" {
		c.fail("Task name cannot be empty!")
		return
	}

	category, ok := c.ask("🏷️  Category (leave blank for none): ")
	if !ok {
		return
	}

	req := ports.CreateTodoRequest{Name: name, Kategori: category}
	if withDue {
		due, ok := c.ask("📅 Due date (YYYY-MM-DD, e.g. 2025-09-15): ")
		if !ok {
			return
		}
		if due != "" {
			if _, err := time.Parse("2006-01-02", due); err != nil {
				c.fail("Wrong date format! Use YYYY-MM-DD")
				return
			}
		}
		req.DueDate = due
	}

	if _, err := c.todos.AddTodo(ctx, req); err != nil {
		c.fail("Error: " + err.Error())
		return
	}
	fmt.Fprintln(c.out, c.st.success.Render(fmt.Sprintf("✅ Todo %q added!", name)))
	c.refresh(ctx)
}

func (c *Console) markDone(ctx context.Context, arg string) {
	numbers, err := ParseSelection(arg, len(c.items))
	if err != nil {
		c.fail(err.Error())
		return
	}

	ids := make([]string, len(numbers))
	for i, n := range numbers {
		ids[i] = c.items[n-1].ID
	}

	done, err := c.todos.MarkTodosDone(ctx, ids)
	for _, n := range numbers[:done] {
		fmt.Fprintln(c.out, c.st.success.Render(fmt.Sprintf("✅ Todo #%d status updated to %q!", n, entities.TodoStatusDone)))
	}
	if err != nil {
		c.logger.Warnw("Bulk done stopped", "completed", done, "requested", len(ids), "error", err)
		c.fail("Error: " + err.Error())
	}
	if done > 0 {
		c.refresh(ctx)
	}
}

func (c *Console) refresh(ctx context.Context) {
	if err := c.reload(ctx); err != nil {
		c.fail("Error: " + err.Error())
		return
	}
	c.render()
}

func (c *Console) reload(ctx context.Context) error {
	items, err := c.todos.ListTodos(ctx)
	if err != nil {
		return err
	}
	c.items = items
	if last := c.totalPages() - 1; c.page > last {
		c.page = last
	}
	return nil
}

func (c *Console) today() entities.Date {
	return entities.Today(c.now(), c.location)
}

func (c *Console) totalPages() int {
	pages := (len(c.items) + c.pageSize - 1) / c.pageSize
	if pages == 0 {
		return 1
	}
	return pages
}

func (c *Console) printReminders() {
	r := services.CollectReminders(c.items, c.today())
	if r.Empty() {
		return
	}
	fmt.Fprintln(c.out, c.st.warn.Render("🔔 REMINDERS"))
	fmt.Fprint(c.out, r.Message())
}

func (c *Console) render() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.st.title.Render("📋 TODO LIST"))
	fmt.Fprintln(c.out, c.st.title.Render(strings.Repeat("=", 30)))

	if len(c.items) == 0 {
		fmt.Fprintln(c.out, c.st.warn.Render("No todos to show."))
		return
	}

	today := c.today()
	start := c.page * c.pageSize
	end := min(start+c.pageSize, len(c.items))
	for i, t := range c.items[start:end] {
		name := t.Name
		if t.IsDone() {
			name = c.st.done.Render(name)
		}
		line := fmt.Sprintf("%s %s %s", c.st.muted.Render(fmt.Sprintf("[%02d]", start+i+1)), Icon(t, today), name)
		if !t.Category.IsNone() {
			line += " " + c.categoryLabel(t.Category)
		}
		if t.DueDate != nil {
			line += " " + c.st.muted.Render("(due "+t.DueDateLabel()+")")
		}
		fmt.Fprintln(c.out, line)
	}

	fmt.Fprintln(c.out, c.st.accent.Render(fmt.Sprintf("📄 Page %d of %d (%d total items)", c.page+1, c.totalPages(), len(c.items))))
}

func (c *Console) categoryLabel(cat entities.Category) string {
	if cat == entities.CategoryPenting {
		return c.st.important.Render("🔥[" + string(cat) + "]")
	}
	return c.st.accent.Render("[" + string(cat) + "]")
}

func (c *Console) printOptions() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Options:")
	fmt.Fprintln(c.out, c.st.accent.Render("2. Add todo"))
	fmt.Fprintln(c.out, c.st.accent.Render("3. Add todo with due date"))
	fmt.Fprintln(c.out, c.st.success.Render("#done <n>, #done 1,3,5 or #done 2-4. Mark as Done"))
	if c.page < c.totalPages()-1 {
		fmt.Fprintln(c.out, c.st.accent.Render("> Next page"))
	}
	if c.page > 0 {
		fmt.Fprintln(c.out, c.st.accent.Render("< Previous page"))
	}
	fmt.Fprintln(c.out, c.st.fail.Render("6. Exit"))
}

func (c *Console) ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) fail(msg string) {
	fmt.Fprintln(c.out, c.st.fail.Render("❌ "+msg))
}

// Icon is the list marker for a todo.
func Icon(t *entities.Todo, today entities.Date) string {
	switch {
	case t.IsDone():
		return "✅"
	case t.DueDate == nil:
		return "❓"
	case t.IsOverdue(today):
		return "❌"
	case t.Status == entities.TodoStatusNotStarted:
		return "✖️"
	default:
		return "➖"
	}
}

// ParseSelection reads "3", "1,3,5" or "2-4" (and mixes such as "1,4-6")
// into 1-based item numbers within [1, total], keeping first-seen order.
func ParseSelection(arg string, total int) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("Missing todo number! Use #done <number>")
	}

	var out []int
	seen := make(map[int]bool)
	add := func(n int) error {
		if n < 1 || n > total {
			return fmt.Errorf("Invalid todo number! Please use a number between 1-%d", total)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
		return nil
	}

	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, isRange := strings.Cut(part, "-"); isRange {
			a, errA := strconv.Atoi(strings.TrimSpace(lo))
			b, errB := strconv.Atoi(strings.TrimSpace(hi))
			if errA != nil || errB != nil || a > b {
				return nil, fmt.Errorf("Invalid range %q", part)
			}
			for n := a; n <= b; n++ {
				if err := add(n); err != nil {
					return nil, err
				}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("Invalid todo number %q", part)
		}
		if err := add(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}
