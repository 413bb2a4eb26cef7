package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"dqc_validation/pkg/core/dqc"
	"dqc_validation/pkg/core/dqc/ruledata"
	"dqc_validation/pkg/core/report"
	"dqc_validation/pkg/core/store"
	"dqc_validation/pkg/core/xbrl"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	instancePath := flag.String("instance", "", "path to the instance document (JSON)")
	rulesDir := flag.String("rules", "", "directory with rule table overrides (defaults to the embedded tables)")
	suppress := flag.String("suppress", "", "|-delimited rule codes to suppress, e.g. DQC.US.0015|DQC.US.0006.14")
	reportPath := flag.String("report", "", "write a Markdown report to this file")
	htmlPath := flag.String("html", "", "write an HTML report to this file")
	persist := flag.Bool("store", false, "persist the findings to the database (DATABASE_URL)")
	flag.Parse()

	if *instancePath == "" {
		log.Fatalf("Usage: %s -instance <document.json> [-rules <dir>] [-suppress <codes>]", os.Args[0])
	}

	instance, err := xbrl.LoadInstance(*instancePath)
	if err != nil {
		log.Fatalf("Failed to load instance: %v", err)
	}

	tables, err := loadTables(*rulesDir)
	if err != nil {
		log.Fatalf("Failed to load rule tables: %v", err)
	}

	var collector dqc.Collector
	validator, err := dqc.NewValidator(instance, tables, dqc.Options{SuppressErrors: *suppress}, &collector)
	if err != nil {
		log.Fatalf("Failed to prepare validation: %v", err)
	}
	if err := validator.Validate(); err != nil {
		log.Fatalf("Validation aborted: %v", err)
	}

	for _, d := range collector.Diagnostics {
		printDiagnostic(d, 0)
	}
	fmt.Printf("%s: %d finding(s)\n", instance.DocumentID, len(collector.Diagnostics))

	if *reportPath != "" {
		md := report.Markdown(instance.DocumentID, collector.Diagnostics)
		if err := os.WriteFile(*reportPath, []byte(md), 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	}
	if *htmlPath != "" {
		html, err := report.HTML(instance.DocumentID, collector.Diagnostics)
		if err != nil {
			log.Fatalf("Failed to render HTML report: %v", err)
		}
		if err := os.WriteFile(*htmlPath, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
	}

	if *persist {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()

		runID, err := store.NewFindingsRepo().Save(ctx, instance.DocumentID, store.Flatten(collector.Diagnostics))
		if err != nil {
			log.Fatalf("Failed to persist findings: %v", err)
		}
		log.Printf("Stored run %s for %s", runID, instance.DocumentID)
	}

	if len(collector.Diagnostics) > 0 {
		os.Exit(1)
	}
}

func loadTables(dir string) (*ruledata.Tables, error) {
	if dir == "" {
		return ruledata.Load()
	}
	return ruledata.LoadDir(dir)
}

func printDiagnostic(d *dqc.Diagnostic, depth int) {
	fmt.Printf("%s%s: %s\n", strings.Repeat("  ", depth), d.Severity, d.Message)
	for _, c := range d.Children {
		printDiagnostic(c, depth+1)
	}
}
