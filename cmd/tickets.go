package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"cinetix-cli/booking"
	"cinetix-cli/store"
	"cinetix-cli/ticket"
)

func newTicketsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List tickets booked on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := store.LoadTickets()
			if err != nil {
				return err
			}
			renderTickets(cmd.OutOrStdout(), tickets)
			return nil
		},
	}
	cmd.AddCommand(newTicketExportCmd())
	return cmd
}

func newTicketExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <booking-code>",
		Short: "Save a ticket as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			receipt, ok, err := store.FindTicket(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("Ticket %s not found", args[0])
			}
			path, err := ticket.Export(receipt, out)
			if err != nil {
				return fmt.Errorf("Could not save ticket: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default is <config dir>/cinetix-cli/tickets/ticket_<code>.pdf)")
	return cmd
}

func renderTickets(out io.Writer, tickets []booking.Receipt) {
	if len(tickets) == 0 {
		fmt.Fprintln(out, "No tickets yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Code", "Movie", "Cinema", "Show", "Seats", "Total"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 24},
		{Number: 3, WidthMax: 24},
		{Number: 6, Align: text.AlignRight},
	})
	for _, r := range tickets {
		t.AppendRow(table.Row{
			r.BookingCode,
			r.MovieTitle,
			r.CinemaName,
			fmt.Sprintf("%s, %s", booking.FormatShowDate(r.Date), r.Time),
			strings.Join(r.Seats, ", "),
			booking.FormatRupiah(r.TotalPrice),
		})
	}
	t.Render()
}
