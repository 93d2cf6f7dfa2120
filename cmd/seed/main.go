package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"matchwell/internal/model"
	"matchwell/internal/repository"
)

var (
	mongoURI string
	database string
	truncate bool
)

var rootCmd = &cobra.Command{
	Use:   "seed <providers.csv>",
	Short: "Import therapist directory listings from a CSV file into MongoDB",
	Long: `Reads a CSV of provider listings and inserts them into the providers
collection. Expected columns:

  name,credentials,modalities,also_offers,region,telehealth,accepting_new,bio,url

Modality columns are semicolon-separated lists of modality keys, e.g.
"cbt;exposure". Unknown modality keys abort the import.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	rootCmd.Flags().StringVar(&database, "database", "matchwell", "MongoDB database name")
	rootCmd.Flags().BoolVar(&truncate, "truncate", false, "delete existing providers before importing")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	providers, err := parseProviders(f)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		return fmt.Errorf("no provider rows found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewProviderRepo(client.Database(database))

	if truncate {
		if err := repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("truncate providers: %w", err)
		}
	}

	if err := repo.InsertMany(ctx, providers); err != nil {
		return fmt.Errorf("insert providers: %w", err)
	}

	fmt.Printf("Imported %d providers into %s.providers\n", len(providers), database)
	return nil
}

func parseProviders(r io.Reader) ([]model.Provider, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "modalities", "region"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var providers []model.Provider
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line++

		modalities, err := parseModalities(field(row, "modalities"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		alsoOffers, err := parseModalities(field(row, "also_offers"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		providers = append(providers, model.Provider{
			ID:           uuid.NewString(),
			Name:         field(row, "name"),
			Credentials:  field(row, "credentials"),
			Modalities:   modalities,
			AlsoOffers:   alsoOffers,
			Region:       field(row, "region"),
			Telehealth:   parseBool(field(row, "telehealth")),
			AcceptingNew: parseBool(field(row, "accepting_new")),
			Bio:          field(row, "bio"),
			URL:          field(row, "url"),
			CreatedAt:    time.Now(),
		})
	}
	return providers, nil
}

func parseModalities(s string) ([]model.Modality, error) {
	if s == "" {
		return nil, nil
	}
	var out []model.Modality
	for _, part := range strings.Split(s, ";") {
		m := model.Modality(strings.TrimSpace(part))
		if m == "" {
			continue
		}
		if !m.Valid() {
			return nil, fmt.Errorf("unknown modality %q", part)
		}
		out = append(out, m)
	}
	return out, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
