package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/complianceos/complianceos/internal/models"
)

func (a *App) customers(ctx context.Context) {
	customers, err := a.client.Customers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(customers) == 0 {
		fmt.Fprintln(a.out, "No customers.")
		return
	}
	for _, c := range customers {
		line := c.Name
		if c.Industry != "" {
			line += " [" + c.Industry + "]"
		}
		fmt.Fprintf(a.out, "%s  %s\n", c.ID, line)
	}
}

func (a *App) dashboard(ctx context.Context) {
	stats, err := a.client.Dashboard(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Customers: %d\n", stats.Customers)
	fmt.Fprintf(a.out, "Questions answered: %d/%d\n", stats.QuestionsAnswered, stats.QuestionsTotal)
	fmt.Fprintf(a.out, "Pending tasks: %d\n", stats.PendingTasks)
	fmt.Fprintf(a.out, "Overdue obligations: %d\n", stats.OverdueObligations)
}

func (a *App) upcoming(ctx context.Context, days int) {
	obligations, err := a.client.UpcomingObligations(ctx, days)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(obligations) == 0 {
		fmt.Fprintf(a.out, "Nothing due in the next %d days.\n", days)
		return
	}
	for _, o := range obligations {
		fmt.Fprintf(a.out, "%s  %s (due %s)\n", o.ID, o.Title, o.DueDate.Format("2006-01-02"))
	}
}

func (a *App) timeline(ctx context.Context) {
	resp, err := a.client.Timeline(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	for _, e := range resp.Entries {
		fmt.Fprintf(a.out, "%-10s %4dd  %s\n", e.Urgency, e.DaysUntil, e.Title)
	}
	fmt.Fprintf(a.out, "total=%d upcoming=%d due_soon=%d overdue=%d completed=%d\n",
		resp.Stats.Total, resp.Stats.Upcoming, resp.Stats.DueSoon, resp.Stats.Overdue, resp.Stats.Completed)
}

func (a *App) search(ctx context.Context, query string) {
	answers, err := a.client.SearchAnswers(ctx, query)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	a.printAnswers(answers)
}

func (a *App) suggest(ctx context.Context, question string) {
	answers, err := a.client.SuggestAnswers(ctx, question)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	a.printAnswers(answers)
}

func (a *App) printAnswers(answers []models.Answer) {
	if len(answers) == 0 {
		fmt.Fprintln(a.out, "No matching answers.")
		return
	}
	for _, ans := range answers {
		fmt.Fprintf(a.out, "Q: %s\nA: %s\n\n", ans.QuestionText, ans.AnswerText)
	}
}

func (a *App) exportSnapshot(ctx context.Context, path string) {
	snap, err := a.client.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Snapshot written to %s\n", path)
}

func (a *App) importSnapshot(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if err := a.client.ReplaceSnapshot(ctx, snap); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Snapshot restored from %s\n", path)
}
