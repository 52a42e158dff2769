package cli

import (
	"github.com/spf13/cobra"

	"github.com/akettner/jire/internal/service"
)

// App holds what CLI commands need: the ticket service plus the
// resolved configuration defaults.
type App struct {
	Tickets        service.TicketService
	DefaultProject string

	// Format is bound to the persistent --format flag.
	Format FormatValue
}

// NewRootCmd creates the top-level "jire" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Format == "" {
		app.Format = FormatConsole
	}

	root := &cobra.Command{
		Use:           "jire",
		Short:         "Ticket tracker for people who live in a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Var(&app.Format, "format", "Output format (json|console)")

	root.AddCommand(
		newLsCmd(app),
		newNewCmd(app),
		newTodoCmd(app),
		newDoingCmd(app),
		newDoneCmd(app),
		newSyncCmd(app),
	)

	return root
}
