package player

import (
	"fmt"
	"strings"
)

// SourceType selects the variant of a Source descriptor.
type SourceType int

const (
	// SourceNetwork plays a URI as-is. The URI may be an opaque content
	// handle such as a blob reference and is never rewritten.
	SourceNetwork SourceType = iota

	// SourceAsset plays a bundled asset, resolved through an AssetResolver.
	SourceAsset

	// SourceFile is a local file path. Unsupported on the web; creation
	// fails fast without constructing an element.
	SourceFile
)

func (t SourceType) String() string {
	switch t {
	case SourceNetwork:
		return "network"
	case SourceAsset:
		return "asset"
	case SourceFile:
		return "file"
	default:
		return "unknown"
	}
}

// Source describes one piece of playable media. Immutable once handed to the
// registry.
type Source struct {
	Type SourceType

	// URI is the network URI for SourceNetwork, or the path for SourceFile.
	URI string

	// Asset is the bundled-asset key for SourceAsset.
	Asset string

	// Package optionally namespaces Asset to a package's asset bundle.
	Package string
}

// AssetResolver maps a bundled-asset key to a URL the browser can fetch.
// Asset bundling is owned by the host application; the bridge only consumes
// the resolved URL.
type AssetResolver interface {
	Resolve(key string) (string, error)
}

// BaseURLResolver resolves asset keys against the application's asset
// directory, optionally under a base URL.
type BaseURLResolver struct {
	// Base is the application base URL. Empty means document-relative.
	Base string
}

func (r BaseURLResolver) Resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty asset key")
	}
	if r.Base == "" {
		return "assets/" + key, nil
	}
	return strings.TrimSuffix(r.Base, "/") + "/assets/" + key, nil
}

// resolveSource turns a descriptor into a playable URI.
func resolveSource(src Source, assets AssetResolver) (string, error) {
	switch src.Type {
	case SourceNetwork:
		if src.URI == "" {
			return "", fmt.Errorf("%w: empty network uri", ErrInvalidSource)
		}
		return src.URI, nil

	case SourceAsset:
		key := src.Asset
		if src.Package != "" {
			key = "packages/" + src.Package + "/" + key
		}
		uri, err := assets.Resolve(key)
		if err != nil {
			return "", fmt.Errorf("%w: asset %q: %v", ErrInvalidSource, key, err)
		}
		return uri, nil

	case SourceFile:
		return "", fmt.Errorf("%w: file source %q", ErrUnsupportedSource, src.URI)

	default:
		return "", fmt.Errorf("%w: source type %d", ErrInvalidSource, src.Type)
	}
}
