package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pardal23/gato23/internal/store"
)

// RecordView is the listing form of a record.
type RecordView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	Text      bool   `json:"text"`
	CreatedAt string `json:"created_at"`
}

func newRecordView(rec store.Record) RecordView {
	return RecordView{
		ID:        rec.ID,
		Name:      rec.Name,
		MimeType:  rec.MimeType,
		Size:      rec.Size,
		Text:      rec.IsText(),
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListResult holds the output of the list command.
type ListResult struct {
	Records []RecordView `json:"records"`
	Total   int          `json:"total"`
}

func (r ListResult) String() string {
	if len(r.Records) == 0 {
		return "No records in the vault."
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tKIND\tCREATED")
	for _, rec := range r.Records {
		kind := "binary"
		if rec.Text {
			kind = "text"
		}
		mimeType := rec.MimeType
		if mimeType == "" {
			mimeType = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Name, mimeType, humanize.Bytes(uint64(rec.Size)), kind, rec.CreatedAt)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\n%d record(s)", r.Total)
	return buf.String()
}

// parseID parses a record identity argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid record id %q", arg))
	}
	return id, nil
}
