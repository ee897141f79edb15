package table

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/anchore/srcjar/srcjar/presenter/models"
)

const (
	statusCreated  = "created"
	statusUpToDate = "up to date"
	statusSkipped  = "skipped"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	document  models.Document
	withColor func(io.Writer) bool
}

// NewPresenter is a *Presenter constructor
func NewPresenter(doc models.Document) *Presenter {
	return &Presenter{
		document:  doc,
		withColor: supportsColor,
	}
}

// Present creates a table-based report of the packaged source archives
func (pres *Presenter) Present(output io.Writer) error {
	rows := getRows(pres.document)

	if len(rows) == 0 {
		_, err := io.WriteString(output, "No source archives created\n")
		return err
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"Project", "Goal", "Classifier", "Entries", "Size", "Status", "Attached"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	if pres.withColor(output) {
		for _, r := range rows {
			table.Rich(r.render(), []tablewriter.Colors{{}, {}, {}, {}, {}, statusColor(r.status)})
		}
	} else {
		for _, r := range rows {
			table.Append(r.render())
		}
	}

	table.Render()

	return nil
}

type row struct {
	project    string
	goal       string
	classifier string
	entries    string
	size       string
	status     string
	attached   string
}

func (r row) render() []string {
	return []string{r.project, r.goal, r.classifier, r.entries, r.size, r.status, r.attached}
}

func getRows(doc models.Document) []row {
	var rows []row
	for _, a := range doc.Archives {
		status := statusCreated
		if a.UpToDate {
			status = statusUpToDate
		}
		attached := "no"
		if a.Attached {
			attached = "yes"
		}
		rows = append(rows, row{
			project:    a.Project,
			goal:       a.Goal,
			classifier: a.Classifier,
			entries:    strconv.Itoa(a.Entries),
			size:       humanize.Bytes(uint64(a.Size)),
			status:     status,
			attached:   attached,
		})
	}

	for _, s := range doc.Skipped {
		rows = append(rows, row{
			project: s.Project,
			goal:    s.Goal,
			status:  fmt.Sprintf("%s (%s)", statusSkipped, s.Reason),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].project == rows[j].project {
			return rows[i].goal < rows[j].goal
		}
		return rows[i].project < rows[j].project
	})

	return rows
}

func statusColor(status string) tablewriter.Colors {
	switch status {
	case statusCreated:
		return tablewriter.Colors{tablewriter.FgGreenColor}
	case statusUpToDate:
		return tablewriter.Colors{tablewriter.FgCyanColor}
	default:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgHiBlackColor}
	}
}

func supportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
