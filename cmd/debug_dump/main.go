package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/database"
	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"go.uber.org/zap"
)

// debug_dump loads one dataset reference with the configured read options
// and prints it as JSON, followed by its row keys and fingerprint.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_dump <ref>")
	}
	raw := os.Args[1]

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	ref, err := source.ParseRef(raw)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("=== Reference ===\nscheme=%s path=%s bucket=%s table=%s format=%s\n",
		ref.Scheme, ref.Path, ref.Bucket, ref.Table, ref.Format)

	var client storage.Client
	if ref.Scheme == source.SchemeS3 {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			log.Fatal(err)
		}
	}

	loader := source.NewLoader(client, cfg.Storage, nil, zap.NewNop(), cfg.Source)
	if ref.Scheme == source.SchemeDB {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Fatal(err)
		}
		cols, err := database.GetTableColumns(db, ref.Table)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("\n=== Table Columns ===")
		for _, c := range cols {
			fmt.Printf("%s %s -> %s\n", c.Field, c.Type, database.SQLTypeToDType(c.Type))
		}
		loader = source.NewLoader(client, cfg.Storage, db, zap.NewNop(), cfg.Source)
	}

	d, err := loader.Load(context.Background(), raw, cfg.Read)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== Dataset ===")
	if err := dataset.WriteJSON(os.Stdout, d); err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== Row Keys ===")
	for i, k := range d.Index {
		fmt.Printf("%d: kind=%s key=%s\n", i, k.Kind, k)
	}
	fmt.Printf("\nShape: %s\nFingerprint: %016x\n", d.Shape(), d.Fingerprint())
}
