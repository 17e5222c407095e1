package activity

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportFilename is the attachment name used for CSV downloads.
const ExportFilename = "activities_summary.csv"

var csvHeader = []string{"Type", "Duration", "Calories", "Notes", "Date"}

// WriteCSV writes list as CSV with a header row, one activity per line.
func WriteCSV(w io.Writer, list []*Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range list {
		row := []string{
			a.Type,
			strconv.Itoa(a.DurationMinutes),
			strconv.Itoa(a.Calories),
			a.Notes,
			a.Timestamp,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
