package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"cinetix-cli/booking"
	"cinetix-cli/model"
	"cinetix-cli/service"
)

func newCinemasCmd(e *env) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "cinemas",
		Short: "List cinemas",
		Long:  `List the cinema directory, optionally filtered by name or location`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(); err != nil {
				return err
			}
			ctx, cancel := e.requestContext(cmd.Context())
			defer cancel()

			cinemas, err := e.client.ListCinemaDirectory(ctx)
			if err != nil {
				return fmt.Errorf("Failed to load cinemas: %s", service.UserMessage(err, err.Error()))
			}
			renderCinemas(cmd.OutOrStdout(), filterCinemas(cinemas, search))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only cinemas whose name or location contains this text")
	return cmd
}

func filterCinemas(cinemas []model.Cinema, search string) []model.Cinema {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return cinemas
	}
	out := make([]model.Cinema, 0, len(cinemas))
	for _, c := range cinemas {
		if strings.Contains(strings.ToLower(c.Name), search) || strings.Contains(strings.ToLower(c.Location), search) {
			out = append(out, c)
		}
	}
	return out
}

// cityOf takes the last comma separated part of a location.
func cityOf(location string) string {
	parts := strings.Split(location, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

func renderCinemas(out io.Writer, cinemas []model.Cinema) {
	if len(cinemas) == 0 {
		fmt.Fprintln(out, "No cinemas found.")
		return
	}
	sorted := append([]model.Cinema(nil), cinemas...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cityOf(sorted[i].Location) < cityOf(sorted[j].Location)
	})

	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"City", "Cinema", "Location", "Price"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 3, WidthMax: 36},
		{Number: 4, Align: text.AlignRight},
	})
	t.Style().Options.SeparateRows = true

	for _, c := range sorted {
		t.AppendRow(table.Row{
			cityOf(c.Location),
			c.Name,
			c.Location,
			booking.FormatRupiah(c.Price),
		}, rowConfigAutoMerge)
	}
	t.Render()
}
