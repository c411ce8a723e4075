// Package ticket renders booking receipts as printable PDF tickets.
package ticket

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"cinetix-cli/booking"
	"cinetix-cli/config"
)

const pageWidth = 190

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename is the default file name for a receipt's ticket. Characters
// outside [A-Za-z0-9_-] are dropped from the booking code.
func Filename(r booking.Receipt) string {
	code := unsafeFilenameChars.ReplaceAllString(r.BookingCode, "")
	if code == "" {
		code = "unknown"
	}
	return fmt.Sprintf("ticket_%s.pdf", code)
}

// Dir is where tickets are exported when no path is given.
func Dir() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tickets"), nil
}

// Render writes the ticket PDF for r to w.
func Render(w io.Writer, r booking.Receipt) error {
	pdf, err := build(r)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// Export writes the ticket to path, or to Dir()/Filename(r) when path is
// empty, and returns the path written.
func Export(r booking.Receipt, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		dir, err := Dir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, Filename(r))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	pdf, err := build(r)
	if err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write ticket: %w", err)
	}
	return path, nil
}

func build(r booking.Receipt) (*gofpdf.Fpdf, error) {
	if strings.TrimSpace(r.BookingCode) == "" {
		return nil, errors.New("receipt has no booking code")
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Ticket "+r.BookingCode, false)
	pdf.SetCreator(config.AppName, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	cellW := width - left - right
	if cellW <= 0 {
		cellW = pageWidth
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(cellW, 10, "Your Ticket", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(cellW, 9, tr(r.MovieTitle), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(cellW*0.4, 8, label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(cellW*0.6, 8, tr(value), "B", 1, "R", false, 0, "")
	}

	row("Cinema", r.CinemaName)
	row("Date", fmt.Sprintf("%s, %s", booking.FormatShowDate(r.Date), r.Time))
	row("Seats", strings.Join(r.Seats, ", "))
	row("Booking Code", r.BookingCode)
	row("Payment", r.PaymentMethod)
	row(fmt.Sprintf("Ticket x %d", len(r.Seats)), booking.FormatRupiah(r.TicketPrice*int64(len(r.Seats))))
	row(fmt.Sprintf("Fee x %d", len(r.Seats)), booking.FormatRupiah(r.ConvenienceFee*int64(len(r.Seats))))
	row("Total", booking.FormatRupiah(r.TotalPrice))

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	if !r.BookedAt.IsZero() {
		pdf.CellFormat(cellW, 6, "Booked at "+r.BookedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(cellW, 6, "Show this code at the cinema counter.", "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return pdf, nil
}
