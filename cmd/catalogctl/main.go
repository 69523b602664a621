package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meublia-cloud/furndex/internal/config"
	dbRedis "github.com/meublia-cloud/furndex/internal/db/redis"
	domcatalog "github.com/meublia-cloud/furndex/internal/domain/catalog"
	logpkg "github.com/meublia-cloud/furndex/internal/logger"
	catalogrepo "github.com/meublia-cloud/furndex/internal/repository/catalog"
	"github.com/meublia-cloud/furndex/internal/version"
)

// productRecord is one entry of the import file. Mirrors the catalog hash
// layout; attribute fields may be absent.
type productRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	Type        *string `json:"type"`
	Material    *string `json:"material"`
	Fabric      *string `json:"fabric"`
	Color       *string `json:"color"`
	Style       *string `json:"style"`
	Room        *string `json:"room"`
	Price       float64 `json:"price"`
	StockQty    int     `json:"stock_qty"`
}

var (
	retailerID string
	filePath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "catalogctl",
		Short:   "Manage furndex product catalogs: import products, manage search indexes.",
		Version: fmt.Sprintf("%s (%s)", version.Version, version.Commit),
	}
	rootCmd.PersistentFlags().StringVar(&retailerID, "retailer", "demo-retailer-id", "retailer catalog to operate on")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import products from a JSON file and ensure the search index exists.",
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&filePath, "file", "", "path to a JSON array of products (required)")
	_ = importCmd.MarkFlagRequired("file")

	dropCmd := &cobra.Command{
		Use:   "drop-index",
		Short: "Drop the retailer's search index. Product hashes are kept.",
		RunE:  runDropIndex,
	}

	rootCmd.AddCommand(importCmd, dropCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRepo(ctx context.Context, logger *zap.Logger) (*catalogrepo.Repo, func(), error) {
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create catalog store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("catalog store not ready: %w", err)
	}

	logger.Info("Connected to catalog store", zap.Strings("addrs", cfg.Database.Addrs))
	return catalogrepo.New(store, cfg.Storage.KeyPrefix), store.Close, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	logger, err := logpkg.New(config.GetEnv(), "")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read products file: %w", err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse products file: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("products file is empty")
	}

	products := make([]domcatalog.Product, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		products = append(products, domcatalog.Product{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    rec.Category,
			Type:        rec.Type,
			Material:    rec.Material,
			Fabric:      rec.Fabric,
			Color:       rec.Color,
			Style:       rec.Style,
			Room:        rec.Room,
			Price:       rec.Price,
			StockQty:    rec.StockQty,
		})
	}

	ctx := cmd.Context()
	repo, closeStore, err := newRepo(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := repo.EnsureIndex(ctx, retailerID); err != nil {
		return err
	}
	if err := repo.Upsert(ctx, retailerID, products); err != nil {
		return err
	}

	// FT indexing is asynchronous; the count reflects what is searchable now.
	indexed, err := repo.Count(ctx, retailerID)
	if err != nil {
		logger.Warn("Could not count indexed products", zap.Error(err))
	}

	logger.Info("Catalog imported",
		zap.String("retailer_id", retailerID),
		zap.Int("products", len(products)),
		zap.Int("indexed", indexed),
	)
	return nil
}

func runDropIndex(cmd *cobra.Command, _ []string) error {
	logger, err := logpkg.New(config.GetEnv(), "")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	repo, closeStore, err := newRepo(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := repo.DropIndex(ctx, retailerID); err != nil {
		return err
	}

	logger.Info("Catalog index dropped", zap.String("retailer_id", retailerID))
	return nil
}
