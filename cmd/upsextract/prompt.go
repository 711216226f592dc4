package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/export"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
)

// runInteractive is the no-argument flow: prompt for a PDF (drag-and-drop
// friendly), show the table, then offer to save.
func runInteractive(ctx context.Context, pipe *pipeline.Pipeline) error {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  UPS Daily Shipment Detail Report - PDF Extractor")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("  Drag and drop a PDF file here, or type the file path:")
	fmt.Println()

	pdfPath, err := promptForPDF(in)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Reading: %s\n\n", pdfPath)
	res, err := pipe.Run(ctx, pdfPath)
	if err != nil {
		return err
	}
	export.WriteTable(os.Stdout, res.Records)

	output, format := promptForOutput(in, pdfPath)
	if output == "" {
		return nil
	}
	return saveRecords(res.Records, output, format)
}

func promptForPDF(in *bufio.Scanner) (string, error) {
	for {
		fmt.Print("  PDF file: ")
		if !in.Scan() {
			fmt.Println("\nCancelled.")
			os.Exit(0)
		}
		path := cleanPath(in.Text())
		if path == "" {
			fmt.Println("  No input provided. Please try again.")
			fmt.Println()
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("  File not found: %s\n\n", path)
			continue
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			fmt.Printf("  Not a PDF file: %s\n\n", filepath.Base(path))
			continue
		}
		return path, nil
	}
}

func promptForOutput(in *bufio.Scanner, pdfPath string) (output, format string) {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))

	fmt.Println()
	fmt.Println("  Save output to file?")
	fmt.Println("    1) CSV")
	fmt.Println("    2) Excel (.xlsx)")
	fmt.Println("    3) No, just show the table")
	fmt.Println()
	for {
		fmt.Print("  Choice [1/2/3]: ")
		if !in.Scan() {
			fmt.Println()
			return "", ""
		}
		switch strings.TrimSpace(in.Text()) {
		case "1":
			return base + ".csv", "csv"
		case "2":
			return base + ".xlsx", "xlsx"
		case "3", "":
			return "", ""
		default:
			fmt.Println("  Invalid choice. Enter 1, 2, or 3.")
			fmt.Println()
		}
	}
}

// cleanPath strips the surrounding whitespace and quotes that terminals add
// when a file is drag-and-dropped.
func cleanPath(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
