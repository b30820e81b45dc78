package core_test

import (
	"context"
	"testing"

	"vendordesk/internal/core"
)

func TestClientService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewClientService(pool)

	created, err := svc.CreateClient(ctx, core.Client{
		Code:          "C100",
		Name:          "Gamma Softworks",
		ContactPerson: "S. Rao",
		Email:         "accounts@gamma.example",
		City:          "Chennai",
		GSTNumber:     "33AAAAA0000A1Z5",
	})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Created client must have an id")
	}

	// Code and name are mandatory.
	if _, err := svc.CreateClient(ctx, core.Client{Name: "No Code"}); err == nil {
		t.Error("CreateClient should require a code")
	}
	if _, err := svc.CreateClient(ctx, core.Client{Code: "C101"}); err == nil {
		t.Error("CreateClient should require a name")
	}

	created.City = "Coimbatore"
	updated, err := svc.UpdateClient(ctx, *created)
	if err != nil {
		t.Fatalf("UpdateClient failed: %v", err)
	}
	if updated.City != "Coimbatore" {
		t.Errorf("Expected updated city Coimbatore, got %s", updated.City)
	}

	fetched, err := svc.GetClient(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if fetched.Name != "Gamma Softworks" {
		t.Errorf("Expected Gamma Softworks, got %s", fetched.Name)
	}

	clients, err := svc.GetClients(ctx)
	if err != nil {
		t.Fatalf("GetClients failed: %v", err)
	}
	// Two seeded clients plus the one created here, ordered by code.
	if len(clients) != 3 {
		t.Fatalf("Expected 3 clients, got %d", len(clients))
	}
	if clients[0].Code != "C001" || clients[2].Code != "C100" {
		t.Errorf("Expected code ordering C001..C100, got %s..%s", clients[0].Code, clients[2].Code)
	}
}
