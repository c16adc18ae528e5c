// Package source opens datasets from files, standard input or URLs.
package source

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/httputil"
	nvio "github.com/matzehuels/nestview/pkg/io"
)

// Stdin is the reference that reads from standard input.
const Stdin = "-"

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Watchable reports whether ref names a local file.
func Watchable(ref string) bool {
	return ref != Stdin && !IsRemote(ref)
}

// Open reads the dataset named by ref.
//
// URLs are fetched with client, which may be nil for a default client. The
// decoder follows the URL path's extension and falls back to sniffing.
func Open(ctx context.Context, ref string, client *httputil.Client) (*nvio.Dataset, error) {
	switch {
	case ref == Stdin:
		return nvio.Read(os.Stdin, nvio.FormatAuto)
	case IsRemote(ref):
		return fetch(ctx, ref, client)
	case strings.TrimSpace(ref) == "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "no dataset given")
	}
	return nvio.ReadFile(ref)
}

func fetch(ctx context.Context, ref string, client *httputil.Client) (*nvio.Dataset, error) {
	if client == nil {
		client = httputil.NewClient()
	}
	data, err := client.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	u, _ := url.Parse(ref)
	return nvio.Read(bytes.NewReader(data), nvio.FormatFromPath(u.Path))
}
