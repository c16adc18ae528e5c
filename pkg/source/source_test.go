package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/httputil"
)

const dataset = `{"containers": [{"id": "A", "name": "Intake", "tags": "group"}]}`

const yamlDataset = `
containers:
  - id: A
    name: Intake
    tags: group
  - id: B
    name: Review
`

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/d.json": true,
		"http://localhost:8080/d":    true,
		"ftp://example.com/d.json":   false,
		"data/d.json":                false,
		"-":                          false,
		"http://":                    false,
	}
	for ref, want := range tests {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", ref, got, want)
		}
		if got := Watchable(ref); got == want && ref != "-" {
			t.Errorf("Watchable(%q) = %v", ref, got)
		}
	}
	if Watchable(Stdin) {
		t.Error("stdin is not watchable")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")
	if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(d.Containers) != 1 || d.Containers[0].Name != "Intake" {
		t.Errorf("containers = %+v", d.Containers)
	}

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	_, err = Open(context.Background(), " ", nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/d.json":
			w.Write([]byte(dataset))
		case "/d.yaml":
			w.Write([]byte(yamlDataset))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := httputil.NewClient(httputil.WithRetry(1, time.Millisecond))
	ctx := context.Background()

	d, err := Open(ctx, srv.URL+"/d.json", client)
	if err != nil || len(d.Containers) != 1 {
		t.Fatalf("json: %+v, %v", d, err)
	}
	d, err = Open(ctx, srv.URL+"/d.yaml?rev=2", client)
	if err != nil || len(d.Containers) != 2 {
		t.Fatalf("yaml: %+v, %v", d, err)
	}
	if _, err := Open(ctx, srv.URL+"/gone.json", client); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
