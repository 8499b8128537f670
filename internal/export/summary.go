package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mapa3/distribucion-app/models"
)

var rule = strings.Repeat("=", 60)

func printHeader(w io.Writer) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "   SQLite -> PostgreSQL DATA EXPORTER")
	fmt.Fprintln(w, rule)
}

func printFooter(w io.Writer) {
	fmt.Fprintln(w, rule)
}

func printSourceMissing(w io.Writer, source string) {
	fmt.Fprintf(w, "Could not find %s at %s\n", filepath.Base(source), source)
	fmt.Fprintln(w, "   Copy your db.sqlite3 file into the project directory.")
}

func printSummary(w io.Writer, result *models.ExportResult) {
	name := filepath.Base(result.Path)

	fmt.Fprintf(w, "\nData exported to: %s\n", result.Path)
	if result.UploadedTo != "" {
		fmt.Fprintf(w, "Uploaded to: %s\n", result.UploadedTo)
	}
	fmt.Fprintf(w, "Total tables: %d\n", len(result.Tables))
	fmt.Fprintf(w, "Total records: %d\n", result.TotalRecords)

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "   1. Copy this JSON file to the PostgreSQL host")
	fmt.Fprintln(w, "   2. Load it with the import command")
	source := name
	if result.UploadedTo != "" {
		source = result.UploadedTo
	} else {
		fmt.Fprintf(w, "      docker cp %s mapa3_django:/app/\n", name)
	}
	fmt.Fprintf(w, "      docker-compose exec web import %s\n", source)
}
