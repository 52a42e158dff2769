package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akettner/jire/internal/cli/formatter"
	"github.com/akettner/jire/internal/domain"
	"github.com/akettner/jire/internal/repository"
)

func newLsCmd(app *App) *cobra.Command {
	var search, assignedTo, createdBy, status string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tickets, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.Filter{
				Search:     search,
				AssignedTo: assignedTo,
				CreatedBy:  createdBy,
			}
			if status != "" {
				parsed, err := domain.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = parsed
			}

			tickets, err := app.Tickets.List(context.Background(), filter)
			if err != nil {
				return err
			}
			return printTickets(cmd, app.Format, tickets)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Full-text search over name, description, project, status, assignee and creator")
	cmd.Flags().StringVar(&assignedTo, "assigned_to", "", "Only tickets assigned to this user")
	cmd.Flags().StringVar(&createdBy, "created_by", "", "Only tickets created by this user")
	cmd.Flags().StringVar(&status, "status", "", "Only tickets with this status (TODO|DOING|DONE)")

	return cmd
}

func newNewCmd(app *App) *cobra.Command {
	var description, assignTo, project string

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if project == "" {
				project = app.DefaultProject
			}
			if _, err := app.Tickets.Create(ctx, args[0], description, project, assignTo); err != nil {
				return err
			}
			return printAllTickets(cmd, app)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Ticket description")
	cmd.Flags().StringVar(&assignTo, "assign_to", "", "Assignee (defaults to you)")
	cmd.Flags().StringVar(&project, "project", "", "Project tag (defaults to the configured project)")

	return cmd
}

func newTodoCmd(app *App) *cobra.Command {
	var assignTo string

	cmd := &cobra.Command{
		Use:   "todo ID",
		Short: "Move a ticket back to TODO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tickets.MarkTodo(context.Background(), id, assignTo); err != nil {
				return err
			}
			return printAllTickets(cmd, app)
		},
	}

	cmd.Flags().StringVar(&assignTo, "assign_to", "", "Assignee (omit to clear)")

	return cmd
}

func newDoingCmd(app *App) *cobra.Command {
	var assignTo string

	cmd := &cobra.Command{
		Use:   "doing ID",
		Short: "Move a ticket to DOING",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tickets.MarkDoing(context.Background(), id, assignTo); err != nil {
				return err
			}
			return printAllTickets(cmd, app)
		},
	}

	cmd.Flags().StringVar(&assignTo, "assign_to", "", "Assignee (defaults to you)")

	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Complete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tickets.MarkDone(context.Background(), id, notes); err != nil {
				return err
			}
			return printAllTickets(cmd, app)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Completion notes")

	return cmd
}

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync tickets with a remote (not implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "A sync feature may be cool for teams")
			return nil
		},
	}
}

func parseTicketID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ticket ID %q", arg)
	}
	return id, nil
}

// printAllTickets prints the unfiltered listing, which every mutating
// command does after it succeeds.
func printAllTickets(cmd *cobra.Command, app *App) error {
	tickets, err := app.Tickets.List(context.Background(), repository.Filter{})
	if err != nil {
		return err
	}
	return printTickets(cmd, app.Format, tickets)
}

func printTickets(cmd *cobra.Command, format FormatValue, tickets []*domain.Ticket) error {
	if format == FormatJSON {
		out, err := formatter.FormatTicketsJSON(tickets)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTicketsTable(tickets))
	return nil
}
