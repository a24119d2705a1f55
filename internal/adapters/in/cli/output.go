package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"fleetdelivery/internal/core/application/usecases/commands"
)

const notDelivered = "N/A"

// CostLine is one row of a cost-only report.
type CostLine struct {
	ID        string
	Discount  float64
	TotalCost float64
}

// WriteEstimate prints "<id> <discount> <total> <time|N/A>" per parcel, in
// input order, followed by the error block.
func WriteEstimate(w io.Writer, result commands.EstimateDeliveryResult, lineErrors []string) error {
	for _, p := range result.Parcels {
		eta := notDelivered
		if p.DeliveryTime != nil {
			eta = FormatNumber(*p.DeliveryTime)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n",
			p.ID, FormatNumber(p.Discount), FormatNumber(p.TotalCost), eta); err != nil {
			return err
		}
	}
	return writeErrors(w, slices.Concat(lineErrors, result.SkipMessages))
}

// WriteCosts prints "<id> <discount> <total>" per parcel.
func WriteCosts(w io.Writer, lines []CostLine, errorMessages []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			l.ID, FormatNumber(l.Discount), FormatNumber(l.TotalCost)); err != nil {
			return err
		}
	}
	return writeErrors(w, errorMessages)
}

func writeErrors(w io.Writer, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Errors:"); err != nil {
		return err
	}
	for _, m := range messages {
		if _, err := fmt.Fprintln(w, m); err != nil {
			return err
		}
	}
	return nil
}

// FormatNumber renders v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
