package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sheetstore/adapters/excel"
	"sheetstore/adapters/memory"
	"sheetstore/adapters/mongo"
	"sheetstore/app"
	"sheetstore/internal/config"
	"sheetstore/ports"
)

var (
	filePath   string
	documentID string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Import spreadsheet files into the table store",
	Long: `Importer parses a local Excel or CSV file and persists it through
the same codec and identity policy the HTTP API uses. Passing --id merges
into that named slot instead of creating a new document.`,
	RunE: runImport,
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "spreadsheet file to import (required)")
	rootCmd.Flags().StringVarP(&documentID, "id", "i", "", "explicit document id (merge into a named slot)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and encode without writing to MongoDB")
	rootCmd.MarkFlagRequired("file")
}

func initEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found or error loading it: %v", err)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	ds, err := excel.Parse(filepath.Base(filePath), f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	if ds.RowCount == 0 {
		return fmt.Errorf("%s parsed to zero data rows", filePath)
	}

	var store ports.DocumentStore
	if dryRun {
		store = memory.New()
	} else {
		cfg := config.Load()
		mongoStore, err := mongo.Connect(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return fmt.Errorf("storage init failed: %w", err)
		}
		defer mongoStore.Close()
		store = mongoStore
	}

	result, err := app.NewTableService(store).Upload(context.Background(), ds, documentID)
	if err != nil {
		return err
	}
	log.Printf("imported %s as %s (%d rows): %s", ds.FileName, result.DocumentID, ds.RowCount, result.Message)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
