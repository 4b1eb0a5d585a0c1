package handlers

import (
	"testing"

	"boosterdex/services"
)

type openBoosterBody struct {
	Success   bool                 `json:"success"`
	Cards     []services.DrawnCard `json:"cards"`
	Remaining int                  `json:"boosters_remaining"`
	Error     string               `json:"error"`
}

type statusBody struct {
	Success bool                   `json:"success"`
	Status  services.BoosterStatus `json:"status"`
}

type collectionBody struct {
	Success    bool                       `json:"success"`
	Collection []services.CollectionEntry `json:"collection"`
}

type statsBody struct {
	Success bool                     `json:"success"`
	Stats   services.CollectionStats `json:"stats"`
}

// Full scenario over HTTP: one booster remaining, open it, then hit the limit.
func TestOpenBoosterScenarioLastBooster(t *testing.T) {
	t.Setenv("MAX_DAILY_BOOSTERS", "1")

	app := newTestApp(t)
	seedTestCatalog(t, 2)
	cookies := register(t, app, "ash", "pikachu123")

	// Status before: full quota.
	req := jsonRequest(t, "GET", "/api/booster/status", nil, cookies)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("status request: %v", err)
	}
	var status statusBody
	decodeBody(t, resp, &status)
	if status.Status.Remaining != 1 {
		t.Fatalf("remaining = %d, want 1", status.Status.Remaining)
	}

	// Open the last booster.
	req = jsonRequest(t, "POST", "/api/booster/open", nil, cookies)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("open request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("open status = %d, want 200", resp.StatusCode)
	}
	var opened openBoosterBody
	decodeBody(t, resp, &opened)
	if len(opened.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(opened.Cards))
	}
	if opened.Remaining != 0 {
		t.Errorf("remaining after open = %d, want 0", opened.Remaining)
	}

	// Stats reflect the committed open.
	req = jsonRequest(t, "GET", "/api/collection/stats", nil, cookies)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("stats request: %v", err)
	}
	var stats statsBody
	decodeBody(t, resp, &stats)
	if stats.Stats.TotalCards != 3 {
		t.Errorf("total cards = %d, want 3", stats.Stats.TotalCards)
	}

	// Second open is rejected and changes nothing.
	req = jsonRequest(t, "POST", "/api/booster/open", nil, cookies)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("second open request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("second open status = %d, want 403", resp.StatusCode)
	}
	var rejected openBoosterBody
	decodeBody(t, resp, &rejected)
	if rejected.Success || rejected.Remaining != 0 {
		t.Errorf("rejected open body = %+v, want remaining 0", rejected)
	}

	req = jsonRequest(t, "GET", "/api/collection/stats", nil, cookies)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("stats request: %v", err)
	}
	decodeBody(t, resp, &stats)
	if stats.Stats.TotalCards != 3 {
		t.Errorf("total cards after rejected open = %d, want 3", stats.Stats.TotalCards)
	}
}

func TestBoosterEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []struct{ method, path string }{
		{"POST", "/api/booster/open"},
		{"GET", "/api/booster/status"},
		{"GET", "/api/collection/"},
		{"GET", "/api/collection/stats"},
	} {
		req := jsonRequest(t, target.method, target.path, nil, nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("%s %s: %v", target.method, target.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 401 {
			t.Errorf("%s %s status = %d, want 401", target.method, target.path, resp.StatusCode)
		}
	}
}

func TestCollectionNewestFirstOverHTTP(t *testing.T) {
	app := newTestApp(t)
	seedTestCatalog(t, 2)
	cookies := register(t, app, "misty", "starmie12")

	for i := 0; i < 2; i++ {
		req := jsonRequest(t, "POST", "/api/booster/open", nil, cookies)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("open %d: %v", i+1, err)
		}
		resp.Body.Close()
	}

	req := jsonRequest(t, "GET", "/api/collection/", nil, cookies)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("collection request: %v", err)
	}
	var body collectionBody
	decodeBody(t, resp, &body)

	if len(body.Collection) == 0 {
		t.Fatal("collection is empty after two opens")
	}
	for i := 1; i < len(body.Collection); i++ {
		if body.Collection[i-1].LastObtainedAt.Before(body.Collection[i].LastObtainedAt) {
			t.Errorf("collection not ordered newest first")
		}
	}
}

func TestGetCardsFilters(t *testing.T) {
	app := newTestApp(t)
	seedTestCatalog(t, 2)

	req := jsonRequest(t, "GET", "/api/cards?rarity=ultra", nil, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("cards request: %v", err)
	}
	var body struct {
		Success bool `json:"success"`
		Cards   []struct {
			Rarity string `json:"rarity"`
		} `json:"cards"`
	}
	decodeBody(t, resp, &body)

	if len(body.Cards) != 2 {
		t.Fatalf("got %d ultra cards, want 2", len(body.Cards))
	}
	for _, card := range body.Cards {
		if card.Rarity != "ultra" {
			t.Errorf("filter leaked rarity %q", card.Rarity)
		}
	}

	req = jsonRequest(t, "GET", "/api/cards?rarity=mythic", nil, nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("cards request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Errorf("unknown rarity status = %d, want 400", resp.StatusCode)
	}
}
