package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/nestview/pkg/cache"
	"github.com/matzehuels/nestview/pkg/config"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir(config.CacheConfig{Dir: "/tmp/nv-cache"})
	if err != nil || dir != "/tmp/nv-cache" {
		t.Errorf("cacheDir(explicit) = %q, %v", dir, err)
	}

	dir, err = cacheDir(config.CacheConfig{})
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
		want    string
	}{
		{"file backend", config.CacheConfig{Backend: config.CacheFile, Dir: dir}, false, "file"},
		{"none backend", config.CacheConfig{Backend: config.CacheNone, Dir: dir}, false, "null"},
		{"no-cache flag wins", config.CacheConfig{Backend: config.CacheFile, Dir: dir}, true, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(context.Background(), tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer c.Close()

			got := "null"
			if fc, ok := c.(*cache.FileCache); ok {
				got = "file"
				if fc.Dir() != dir {
					t.Errorf("dir = %q, want %q", fc.Dir(), dir)
				}
			}
			if got != tt.want {
				t.Errorf("backend = %s, want %s", got, tt.want)
			}
		})
	}
}
