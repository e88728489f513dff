package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) getStatus() string {
	if err := a.client.Health(context.Background()); err != nil {
		return "(offline)"
	}
	return "(online)"
}

// Root runs the read-eval-print loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "ComplianceOS CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(a.in)

	for {
		fmt.Fprintf(a.out, "cos %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: customers, dashboard, upcoming [days], timeline, search <text>, suggest <question>, export <file>, import <file>, exit")

		case "customers":
			a.customers(ctx)
		case "dashboard":
			a.dashboard(ctx)
		case "upcoming":
			days := 60
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					fmt.Fprintln(a.out, "Usage: upcoming [days]")
					continue
				}
				days = parsed
			}
			a.upcoming(ctx, days)
		case "timeline":
			a.timeline(ctx)
		case "search":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: search <text>")
				continue
			}
			a.search(ctx, strings.Join(args, " "))
		case "suggest":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: suggest <question>")
				continue
			}
			a.suggest(ctx, strings.Join(args, " "))
		case "export":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: export <file>")
				continue
			}
			a.exportSnapshot(ctx, args[0])
		case "import":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: import <file>")
				continue
			}
			a.importSnapshot(ctx, args[0])
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
