package compose

import (
	"context"
	"strings"

	"github.com/kozaktomas/huetone/internal/faults"
)

// Providers return their composed image in one of three shapes: a plain
// URL (or bare base64), a list of URLs, or an asynchronous handle whose URL
// has to be fetched separately. Output is a tagged union over those shapes;
// the shape is decided once at the provider boundary and Resolve holds the
// one decoding function per variant.
type outputKind int

const (
	kindDirectURL outputKind = iota
	kindArrayWrapped
	kindAsyncURL
)

// Output is a provider result pending resolution to a single image source.
type Output struct {
	kind  outputKind
	url   string
	list  []string
	fetch func(ctx context.Context) (string, error)
}

// DirectURL wraps a single URL or bare-base64 string.
func DirectURL(url string) Output {
	return Output{kind: kindDirectURL, url: url}
}

// ArrayWrapped wraps a provider response that lists its outputs.
func ArrayWrapped(urls []string) Output {
	return Output{kind: kindArrayWrapped, list: urls}
}

// AsyncURL wraps a provider response whose URL must be retrieved by a
// follow-up call (polling an asynchronous prediction, for example).
func AsyncURL(fetch func(ctx context.Context) (string, error)) Output {
	return Output{kind: kindAsyncURL, fetch: fetch}
}

// Resolve reduces the output to one string that is directly usable as an
// image source: an absolute URL or a data URI, never bare base64.
func (o Output) Resolve(ctx context.Context) (string, error) {
	switch o.kind {
	case kindDirectURL:
		if o.url == "" {
			return "", faults.New(faults.Upstream, "provider returned no composed image")
		}
		return AsImageSource(o.url), nil

	case kindArrayWrapped:
		for _, u := range o.list {
			if u != "" {
				return AsImageSource(u), nil
			}
		}
		return "", faults.New(faults.Upstream, "provider returned an empty output list")

	case kindAsyncURL:
		url, err := o.fetch(ctx)
		if err != nil {
			return "", err
		}
		if url == "" {
			return "", faults.New(faults.Upstream, "provider returned no composed image")
		}
		return AsImageSource(url), nil
	}
	return "", faults.New(faults.Upstream, "provider returned an unknown output shape")
}

// AsImageSource makes a provider string directly usable as an image source.
// Bare base64 gets a data-URI prefix; URLs and data URIs pass through.
func AsImageSource(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "data:") {
		return s
	}
	return "data:image/png;base64," + s
}
