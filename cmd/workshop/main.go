package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"workshop-manager/internal/ai"
	"workshop-manager/internal/app"
	"workshop-manager/internal/config"
	"workshop-manager/internal/core"
	"workshop-manager/internal/persistence"
	"workshop-manager/internal/persistence/postgres"
	"workshop-manager/internal/persistence/sqlite"
)

const usage = `Usage: workshop <command>

Commands:
  dashboard             print the aggregate dashboard
  export [file]         write a full snapshot to file (default stdout)
  import <file>         replace collections from a snapshot file
  propose "<event>"     interpret a free-text event into an entry proposal
`

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	adapter, err := newAdapter(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("persistence: %v", err)
	}
	defer func() { _ = adapter.Close() }()

	store, err := core.NewStore(ctx, adapter, zap.NewNop())
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	var agent ai.AgentService
	if cfg.AI.OpenAIKey != "" {
		agent = ai.NewAgent(cfg.AI.OpenAIKey)
	}
	svc := app.NewAppService(store, agent)

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "dashboard":
		d, err := svc.GetDashboard(ctx)
		if err != nil {
			log.Fatalf("dashboard: %v", err)
		}
		printJSON(d)

	case "export":
		snap, err := svc.ExportSnapshot(ctx)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		payload, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			log.Fatalf("encode snapshot: %v", err)
		}
		if len(os.Args) > 2 {
			if err := os.WriteFile(os.Args[2], payload, 0o644); err != nil {
				log.Fatalf("write snapshot: %v", err)
			}
			fmt.Printf("snapshot written to %s\n", os.Args[2])
		} else {
			fmt.Println(string(payload))
		}

	case "import":
		if len(os.Args) < 3 {
			log.Fatal(`Usage: workshop import <file>`)
		}
		payload, err := os.ReadFile(os.Args[2])
		if err != nil {
			log.Fatalf("read snapshot: %v", err)
		}
		var snap core.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			log.Fatalf("decode snapshot: %v", err)
		}
		if err := svc.ImportSnapshot(ctx, snap); err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Println("snapshot imported")

	case "propose":
		if len(os.Args) < 3 {
			log.Fatal(`Usage: workshop propose "<event description>"`)
		}
		proposal, err := svc.ProposeEntry(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("propose: %v", err)
		}
		printJSON(proposal)

	default:
		fmt.Print(usage)
		os.Exit(1)
	}
}

func printJSON(v any) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(payload))
}

func newAdapter(ctx context.Context, cfg config.StoreConfig) (persistence.Adapter, error) {
	switch cfg.Backend {
	case "postgres":
		return postgres.New(ctx, cfg.DatabaseURL)
	case "memory":
		return persistence.NewMemory(), nil
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}
