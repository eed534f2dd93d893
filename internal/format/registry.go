// Package format loads versioned JSON documents. Every document family
// registers one entry per on-disk version; loading resolves the version tag,
// decodes into that version's type and upgrades step by step to the latest.
package format

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	ErrUnknownVersion         = errors.New("unrecognized format version")
	ErrMissingVersion         = errors.New("document has no version")
	ErrNoLatestVersion        = errors.New("registry declares no latest version")
	ErrMultipleLatestVersions = errors.New("registry declares more than one latest version")
	ErrDuplicateVersion       = errors.New("version registered twice")
)

// Document is one version of a serialized type. Upgrade converts it to the
// next version; the latest version may return itself.
type Document interface {
	FormatVersion() string
	Upgrade() (Document, error)
}

type Entry struct {
	Version string
	Latest  bool
	New     func() Document
}

type Registry struct {
	name    string
	entries map[string]Entry
	latest  string
}

func NewRegistry(name string, entries ...Entry) (*Registry, error) {
	r := &Registry{name: name, entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, ok := r.entries[e.Version]; ok {
			return nil, fmt.Errorf("%s registry: %w: %q", name, ErrDuplicateVersion, e.Version)
		}
		if e.Latest {
			if r.latest != "" {
				return nil, fmt.Errorf("%s registry: %w: %q and %q", name, ErrMultipleLatestVersions, r.latest, e.Version)
			}
			r.latest = e.Version
		}
		r.entries[e.Version] = e
	}
	if r.latest == "" {
		return nil, fmt.Errorf("%s registry: %w", name, ErrNoLatestVersion)
	}
	return r, nil
}

// MustRegistry is NewRegistry for package level registries. A misconfigured
// registry is a build defect, so it panics.
func MustRegistry(name string, entries ...Entry) *Registry {
	r, err := NewRegistry(name, entries...)
	if nil != err {
		panic(err)
	}
	return r
}

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) Latest() string {
	return r.latest
}

func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.entries))
	for v := range r.entries {
		out = append(out, v)
	}
	return out
}

// Version reads the version tag of a serialized document without decoding
// the rest of it.
func Version(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errors.New("document is not valid JSON")
	}
	v := gjson.GetBytes(data, "version")
	switch {
	case !v.Exists():
		return "", ErrMissingVersion
	case v.Type != gjson.String:
		return "", fmt.Errorf("%w: version must be a string, got %s", ErrUnknownVersion, v.Raw)
	}
	return v.Str, nil
}

// Decode deserializes data with the type registered for its version tag and
// upgrades the result to the latest version.
func (r *Registry) Decode(data []byte) (Document, error) {
	version, err := Version(data)
	if nil != err {
		return nil, fmt.Errorf("failed to read %s version: %w", r.name, err)
	}
	entry, ok := r.entries[version]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", r.name, ErrUnknownVersion, version)
	}

	doc := entry.New()
	if err := json.Unmarshal(data, doc); nil != err {
		return nil, fmt.Errorf("failed to decode %s version %q: %v", r.name, version, err)
	}
	return r.upgrade(doc)
}

func (r *Registry) upgrade(doc Document) (Document, error) {
	for steps := 0; doc.FormatVersion() != r.latest; steps++ {
		if steps >= len(r.entries) {
			return nil, fmt.Errorf("%s: upgrade chain from %q did not reach %q", r.name, doc.FormatVersion(), r.latest)
		}
		from := doc.FormatVersion()
		if _, ok := r.entries[from]; !ok {
			return nil, fmt.Errorf("%s: %w %q", r.name, ErrUnknownVersion, from)
		}
		next, err := doc.Upgrade()
		if nil != err {
			return nil, fmt.Errorf("failed to upgrade %s from version %q: %w", r.name, from, err)
		}
		doc = next
	}
	return doc, nil
}

// Load decodes data and asserts the latest version's type.
func Load[T Document](r *Registry, data []byte) (T, error) {
	var zero T
	doc, err := r.Decode(data)
	if nil != err {
		return zero, err
	}
	out, ok := doc.(T)
	if !ok {
		return zero, fmt.Errorf("%s: latest version decoded as %T, expected %T", r.name, doc, zero)
	}
	return out, nil
}

// Encode serializes a document for writing. Documents are indented so they
// stay diffable.
func Encode(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if nil != err {
		return nil, fmt.Errorf("failed to encode version %q document: %v", doc.FormatVersion(), err)
	}
	return b, nil
}
