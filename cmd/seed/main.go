package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/MiningCadastre/MC-Backend/internal/concessions"
	"github.com/MiningCadastre/MC-Backend/internal/config"
	"github.com/MiningCadastre/MC-Backend/internal/db"
)

func strptr(s string) *string { return &s }

// Sample concessions covering the southwestern gold belt; rings are closed
// so they survive PostGIS validation as-is.
var samples = []concessions.ConcessionInput{
	{
		ID: "GC-WR-001", Name: "Ankobra Gold Concession", Owner: "Ankobra Mining Ltd",
		Size: 124.5, PermitType: "Mining Lease", Status: "active",
		PermitExpiryDate: strptr("2030-06-30"),
		District:         "Nzema East", Region: "Western",
		ContactInfo: &concessions.ContactInfo{
			Phone: strptr("+233302555001"),
			Email: strptr("ops@ankobramining.example"),
		},
		RawAttributes: map[string]interface{}{
			"undertaking": "Gold",
			"shift":       "day",
		},
		Coordinates: concessions.Ring{
			{-2.30, 5.10}, {-2.30, 5.16}, {-2.22, 5.16}, {-2.22, 5.10}, {-2.30, 5.10},
		},
	},
	{
		ID: "GC-AR-002", Name: "Obuasi South Prospecting Block", Owner: "Sankofa Resources",
		Size: 58.2, PermitType: "Prospecting License", Status: "pending",
		District: "Obuasi Municipal", Region: "Ashanti",
		RawAttributes: map[string]interface{}{
			"undertaking": "Gold",
			"stage":       "exploration",
		},
		Coordinates: concessions.Ring{
			{-1.70, 6.15}, {-1.70, 6.22}, {-1.60, 6.22}, {-1.60, 6.15}, {-1.70, 6.15},
		},
	},
	{
		ID: "GC-ER-003", Name: "Birim Diamond Workings", Owner: "Birim Valley Cooperative",
		Size: 12.75, PermitType: "Small Scale License", Status: "expired",
		PermitExpiryDate: strptr("2024-01-31"),
		District:         "Kwaebibirem", Region: "Eastern",
		RawAttributes: map[string]interface{}{
			"undertaking": "Diamond",
		},
		Coordinates: concessions.Ring{
			{-0.98, 6.05}, {-0.98, 6.09}, {-0.93, 6.09}, {-0.93, 6.05}, {-0.98, 6.05},
		},
	},
}

func main() {
	_ = godotenv.Load(".env.local")
	dsn := flag.String("dsn", "", "database DSN (defaults to DATABASE_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	if *dsn != "" {
		cfg.DatabaseURL = *dsn
	}

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := concessions.Init(db.DB); err != nil {
		log.Fatal("Failed to initialize concessions schema: ", err)
	}

	repo := concessions.NewRepository(db.DB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, in := range samples {
		_, err := repo.Create(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, concessions.ErrDuplicateID):
			skipped++
		default:
			log.Fatalf("Failed to seed %s: %v", in.ID, err)
		}
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
