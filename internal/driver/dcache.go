package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/source"
	"hilite/internal/syntax"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest keys a cache entry.
type Digest [32]byte

// CacheKey identifies the decoration of file under def: the content hash,
// the definition fingerprint and the schema version.
func CacheKey(file *source.File, def *langdef.Definition) Digest {
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(def.Fingerprint()))
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит результаты декорирования на диске, по одному файлу
// msgpack на ключ. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of a syntax.Unit. Spans are stored without
// the file reference; Restore rebinds them.
type DiskPayload struct {
	Schema      uint16
	Language    string
	Nodes       []CachedNode
	Diagnostics []CachedDiagnostic
}

type CachedNode struct {
	Kind       uint8
	Start, End uint32
	Decoration uint8
	Children   []CachedNode
}

type CachedDiagnostic struct {
	Severity   uint8
	Code       uint16
	Message    string
	Start, End uint32
	Notes      []CachedNote
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

// OpenDiskCache opens the cache for app under $XDG_CACHE_HOME (or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A missing entry or an entry written
// by another schema version is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим, чтобы параллельный Get не увидел половину
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// unitToPayload converts a parse result for caching.
func unitToPayload(def *langdef.Definition, unit syntax.Unit) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Language:    def.Name,
		Nodes:       cacheNodes(unit.Root.Children),
		Diagnostics: make([]CachedDiagnostic, 0, len(unit.Diagnostics)),
	}
	for _, d := range unit.Diagnostics {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

func cacheNodes(nodes []syntax.Node) []CachedNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]CachedNode, len(nodes))
	for i, n := range nodes {
		out[i] = CachedNode{
			Kind:       uint8(n.Kind),
			Start:      n.Span.Start,
			End:        n.Span.End,
			Decoration: uint8(n.Span.Decoration),
			Children:   cacheNodes(n.Children),
		}
	}
	return out
}

// payloadToUnit rebuilds the unit over file.
func payloadToUnit(file *source.File, payload *DiskPayload) syntax.Unit {
	root := syntax.NewDocument(
		syntax.NewTextSpan(file, 0, file.RuneLen(), syntax.None),
		restoreNodes(file, payload.Nodes),
	)
	diags := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file.ID, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
		}
		diags = append(diags, d)
	}
	return syntax.Unit{Root: root, Diagnostics: diags}
}

func restoreNodes(file *source.File, nodes []CachedNode) []syntax.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]syntax.Node, len(nodes))
	for i, cn := range nodes {
		span := syntax.NewTextSpan(file, cn.Start, cn.End, syntax.Decoration(cn.Decoration))
		kind := syntax.NodeKind(cn.Kind)
		switch kind {
		case syntax.KindDocument:
			out[i] = syntax.NewDocument(span, restoreNodes(file, cn.Children))
		case syntax.KindPreprocessorDirective:
			out[i] = syntax.NewDirective(span, restoreNodes(file, cn.Children))
		default:
			out[i] = syntax.NewLeaf(kind, span)
		}
	}
	return out
}
