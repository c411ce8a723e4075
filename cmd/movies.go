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

func newMoviesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List movies now showing",
		Long:  `List the movies now showing with their next show time`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(); err != nil {
				return err
			}
			ctx, cancel := e.requestContext(cmd.Context())
			defer cancel()

			movies, err := e.client.ListMovies(ctx)
			if err != nil {
				return fmt.Errorf("Failed to load movies: %s", service.UserMessage(err, err.Error()))
			}
			renderMovies(cmd.OutOrStdout(), movies)
			return nil
		},
	}
}

func renderMovies(out io.Writer, movies []model.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies showing.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "Title", "Rating", "Genre", "Duration", "Next Show"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 30},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, WidthMax: 24},
	})

	for _, movie := range movies {
		duration := ""
		if movie.Duration > 0 {
			duration = fmt.Sprintf("%d min", movie.Duration)
		}
		t.AppendRow(table.Row{
			movie.Id,
			movie.Title,
			movie.Rating.String(),
			strings.Join(movie.Genre, ", "),
			duration,
			nextShow(movie),
		})
	}
	t.Render()
}

func nextShow(movie model.Movie) string {
	for _, date := range booking.ShowDates(movie) {
		times := booking.ShowTimes(movie, date)
		if len(times) == 0 {
			continue
		}
		sort.Strings(times)
		return fmt.Sprintf("%s, %s", booking.FormatShowDate(date), times[0])
	}
	return "-"
}
