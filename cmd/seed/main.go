// seed inserts development sample submissions for local testing.
// Idempotent: skips inserts when the first demo submission already exists.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"pharma-content-review/backend/internal/config"
	"pharma-content-review/backend/internal/db"
	"pharma-content-review/backend/internal/submission/domain"
	submissionrepo "pharma-content-review/backend/internal/submission/repository"
)

type demoSubmission struct {
	id       string
	stage    domain.Stage
	origin   *domain.Stage
	stageAge time.Duration
	payload  map[string]any
}

func demoSubmissions() []demoSubmission {
	clientReview := domain.StageClientReview
	return []demoSubmission{
		{
			id:       "demo-sub-001",
			stage:    domain.StageSEOReview,
			stageAge: 6 * time.Hour,
			payload: map[string]any{
				"title":            "Xeltoris (evolocumab): Advanced PCSK9 Inhibitor for Cholesterol Management",
				"meta_description": "Once-monthly PCSK9 inhibitor that reduces LDL cholesterol by up to 60%.",
				"seo_keywords":     []string{"PCSK9 inhibitor", "cholesterol treatment", "evolocumab"},
				"therapeutic_area": "cardiology",
			},
		},
		{
			id:       "demo-sub-002",
			stage:    domain.StageMLRReview,
			stageAge: 90 * time.Hour,
			payload: map[string]any{
				"title":            "NeurogeniX: Dual-Action Treatment for Alzheimer's Disease",
				"meta_description": "Cognitive enhancement with neuroprotection, currently in Phase III trials.",
				"seo_keywords":     []string{"Alzheimer's treatment", "neuroprotection"},
				"therapeutic_area": "neurology",
			},
		},
		{
			id:       "demo-sub-003",
			stage:    domain.StageRevisionRequested,
			origin:   &clientReview,
			stageAge: 12 * time.Hour,
			payload: map[string]any{
				"title":            "ImmunoShield: Selective JAK1 Inhibitor for Rheumatoid Arthritis",
				"meta_description": "Targeted RA treatment with selective JAK1 inhibition.",
				"seo_keywords":     []string{"JAK1 inhibitor", "rheumatoid arthritis"},
				"therapeutic_area": "immunology",
			},
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env or set DATABASE_URL")
		os.Exit(1)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	repo := submissionrepo.NewPostgresRepository(database)

	existing, err := repo.GetByID(ctx, "demo-sub-001")
	if err != nil {
		log.Fatalf("seed: check existing: %v", err)
	}
	if existing != nil {
		log.Println("seed: demo submissions already present, nothing to do")
		return
	}

	now := time.Now().UTC()
	for _, d := range demoSubmissions() {
		payload, err := json.Marshal(d.payload)
		if err != nil {
			log.Fatalf("seed: marshal payload for %s: %v", d.id, err)
		}
		sub := &domain.Submission{
			ID:             d.id,
			Stage:          d.stage,
			Version:        1,
			RevisionOrigin: d.origin,
			Payload:        payload,
			StageEnteredAt: now.Add(-d.stageAge),
			CreatedAt:      now.Add(-d.stageAge - 24*time.Hour),
		}
		if err := repo.Create(ctx, sub); err != nil {
			log.Fatalf("seed: create %s: %v", d.id, err)
		}
		log.Printf("seed: created %s in %s", d.id, d.stage)
	}
}
