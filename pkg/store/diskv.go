package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/resource"
)

// Persistence is the durable store for agenda records. Events are kept one
// record per file; resources are kept together in an index file.
type Persistence interface {
	ListEvents(ctx context.Context) []event.Event
	StoreEvent(e event.Event) error
	DeleteEvent(id string) error
	ListResources() ([]resource.Resource, error)
	SaveResources(list []resource.Resource) error
	Watch(ctx context.Context) (<-chan Change, error)
}

// Option configures Load.
type Option func(*persistence)

// WithLogger routes store warnings to l.
func WithLogger(l *zap.Logger) Option {
	return func(p *persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

const (
	eventsDir     = "events"
	keySep        = ":"
	resourcesFile = ".resources.json"
)

func (p *persistence) read(key string) (event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return event.Event{}, err
	}
	var e event.Event
	if err := json.Unmarshal(val, &e); err != nil {
		return event.Event{}, err
	}
	// The file name is authoritative for the id.
	e.ID = strings.TrimPrefix(key, eventsDir+keySep)
	return e, nil
}

func (p *persistence) ListEvents(ctx context.Context) []event.Event {
	all := make([]event.Event, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, eventsDir+keySep) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable event", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, e)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start.Equal(all[j].Start) {
			return all[i].ID < all[j].ID
		}
		return all[i].Start.Before(all[j].Start)
	})
	return all
}

func (p *persistence) StoreEvent(e event.Event) error {
	if e.ID == "" {
		return errors.New("store: event id required")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(eventKey(e.ID), data); err != nil {
		return fmt.Errorf("store: write event %s: %w", e.ID, err)
	}
	return nil
}

func (p *persistence) DeleteEvent(id string) error {
	if err := p.d.Erase(eventKey(id)); err != nil {
		return fmt.Errorf("store: erase event %s: %w", id, err)
	}
	return nil
}

func (p *persistence) resourcesPath() string {
	return filepath.Join(p.basePath, resourcesFile)
}

func (p *persistence) ListResources() ([]resource.Resource, error) {
	data, err := os.ReadFile(p.resourcesPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []resource.Resource{}, nil
		}
		return nil, fmt.Errorf("store: read resources: %w", err)
	}
	if len(data) == 0 {
		return []resource.Resource{}, nil
	}
	list, err := resource.UnmarshalList(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode resources: %w", err)
	}
	return list, nil
}

func (p *persistence) SaveResources(list []resource.Resource) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	data, err := resource.MarshalList(list)
	if err != nil {
		return err
	}
	path := p.resourcesPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write resources: %w", err)
	}
	return os.Rename(tmp, path)
}

// eventKey makes `events:<id>`.
func eventKey(id string) string {
	return eventsDir + keySep + id
}

// keyToPathTransform stores `kind:id` as <kind>/<base64url(id)> so any id is
// a safe file name.
func keyToPathTransform(key string) *diskv.PathKey {
	kind, id, ok := strings.Cut(key, keySep)
	if !ok {
		return &diskv.PathKey{FileName: encodeName(key)}
	}
	return &diskv.PathKey{
		Path:     []string{kind},
		FileName: encodeName(id),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := decodeName(pathKey.FileName)
	if len(pathKey.Path) == 0 {
		return name
	}
	return strings.Join(pathKey.Path, "/") + keySep + name
}

func encodeName(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func decodeName(s string) string {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(b)
}
