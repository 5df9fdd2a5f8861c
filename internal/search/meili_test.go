package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewMeiliClientValidation(t *testing.T) {
	if _, err := NewMeiliClient("", "key", "docs"); err == nil {
		t.Error("expected error for empty host")
	}
	if _, err := NewMeiliClient("http://127.0.0.1:7700", "key", ""); err == nil {
		t.Error("expected error for empty index")
	}
	client, err := NewMeiliClient("http://127.0.0.1:7700/", "", "docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.HealthURL() != "http://127.0.0.1:7700/health" {
		t.Errorf("unexpected health url: %q", client.HealthURL())
	}
}

func TestMeiliSearchRequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"hits":[{"title":"Validators","path":"/protocol/validators","content":"How staking works","_rankingScore":0.91}]}`))
	}))
	defer srv.Close()

	client, err := NewMeiliClient(srv.URL, "masterKey", "near-docs")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	hits, err := client.Search(context.Background(), "validators", Options{Limit: 5, HybridRatio: 0.5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotPath != "/indexes/near-docs/search" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer masterKey" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["q"] != "validators" || gotBody["limit"] != float64(5) {
		t.Errorf("unexpected body: %v", gotBody)
	}
	hybrid, ok := gotBody["hybrid"].(map[string]interface{})
	if !ok || hybrid["semanticRatio"] != 0.5 || hybrid["embedder"] != "default" {
		t.Errorf("unexpected hybrid settings: %v", gotBody["hybrid"])
	}

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Title != "Validators" || hits[0].Path != "/protocol/validators" || hits[0].Score != 0.91 {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
}

func TestMeiliSearchOmitsHybridWhenUnset(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"hits":[]}`))
	}))
	defer srv.Close()

	client, _ := NewMeiliClient(srv.URL, "", "near-docs")
	if _, err := client.Search(context.Background(), "anything", Options{Limit: 3}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, present := gotBody["hybrid"]; present {
		t.Error("hybrid should be omitted when ratio is zero")
	}
}

func TestMeiliSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, _ := NewMeiliClient(srv.URL, "wrong", "near-docs")
	if _, err := client.Search(context.Background(), "anything", Options{}); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}
