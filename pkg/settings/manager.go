package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
	"github.com/gamekit-dev/gamekit/pkg/storage"
)

// DefaultFilename is the settings file written when no filename is given.
const DefaultFilename = "game.yaml"

// Key identifies a setting. Keys are usually small integer enums with a
// String method; the string form is what appears in the file.
type Key interface {
	comparable
	String() string
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	filename string
	codec    Codec
	logger   *slog.Logger
	observer bindable.Observer
}

// WithFilename sets the settings file name inside the storage.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithCodec overrides the codec chosen from the filename extension.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver attaches o to every setting cell the manager creates.
func WithObserver(o bindable.Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// Manager holds the settings for one key type.
type Manager[K Key] struct {
	store    storage.Storage
	filename string
	codec    Codec
	logger   *slog.Logger
	observer bindable.Observer

	entries map[string]entry
	keys    map[string]K
	order   []string

	// pending holds values loaded for keys that were not registered yet.
	pending map[string]any

	subscribers []subscriber
	nextSubID   uint64
}

type subscriber struct {
	id uint64
	fn func(name string, value any)
}

// New creates a Manager storing its file in store.
func New[K Key](store storage.Storage, opts ...Option) (*Manager[K], error) {
	o := options{filename: DefaultFilename}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		c, err := CodecFor(o.filename)
		if err != nil {
			return nil, err
		}
		o.codec = c
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "settings")
	}

	return &Manager[K]{
		store:    store,
		filename: o.filename,
		codec:    o.codec,
		logger:   o.logger,
		observer: o.observer,
		entries:  make(map[string]entry),
		keys:     make(map[string]K),
		pending:  make(map[string]any),
	}, nil
}

// Filename returns the settings file name.
func (m *Manager[K]) Filename() string {
	return m.filename
}

// Codec returns the codec used for the settings file.
func (m *Manager[K]) Codec() Codec {
	return m.codec
}

// Set creates the setting with value as its default, or assigns value to
// an existing setting. The setting's cell is returned so callers can bind
// to it.
//
// A freshly created setting adopts a value previously loaded from the file
// for the same key.
func Set[K Key, T any](m *Manager[K], key K, value T) (*bindable.Bindable[T], error) {
	name := key.String()
	if e, ok := m.entries[name]; ok {
		te, ok := e.(*typedEntry[T])
		if !ok {
			return nil, typeMismatch(name, e.typeName(), typeName[T]())
		}
		if err := te.cell.SetValue(value); err != nil {
			return nil, err
		}
		return te.cell, nil
	}

	cell := bindable.New(value)
	if m.observer != nil {
		cell.WithObserver(m.observer)
	}
	te := &typedEntry[T]{name: name, cell: cell}

	if raw, ok := m.pending[name]; ok {
		delete(m.pending, name)
		if err := te.setRaw(raw); err != nil {
			m.logger.Warn("discarding loaded setting",
				"key", name,
				"error", err,
			)
		}
	}

	m.entries[name] = te
	m.keys[name] = key
	m.order = append(m.order, name)
	cell.AddValueChangedListener(func(v T) {
		m.notify(name, v)
	})

	m.logger.Debug("setting registered", "key", name, "type", te.typeName())
	return cell, nil
}

// Get returns the current value of a setting.
func Get[K Key, T any](m *Manager[K], key K) (T, error) {
	cell, err := Bindable[K, T](m, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return cell.Value(), nil
}

// Bindable returns the cell backing a setting.
func Bindable[K Key, T any](m *Manager[K], key K) (*bindable.Bindable[T], error) {
	name := key.String()
	e, ok := m.entries[name]
	if !ok {
		return nil, unknownKey(name)
	}
	te, ok := e.(*typedEntry[T])
	if !ok {
		return nil, typeMismatch(name, e.typeName(), typeName[T]())
	}
	return te.cell, nil
}

// BindWith binds b to a setting. b adopts the setting's current value and
// from then on every change on either side reaches the other.
func BindWith[K Key, T any](m *Manager[K], key K, b *bindable.Bindable[T]) error {
	cell, err := Bindable[K, T](m, key)
	if err != nil {
		return err
	}
	b.BindTo(cell)
	return nil
}

// Keys returns the registered keys in registration order.
func (m *Manager[K]) Keys() []K {
	keys := make([]K, 0, len(m.order))
	for _, name := range m.order {
		keys = append(keys, m.keys[name])
	}
	return keys
}

// Names returns the registered key names in registration order.
func (m *Manager[K]) Names() []string {
	return append([]string(nil), m.order...)
}

// Lookup returns the registered key with the given name.
func (m *Manager[K]) Lookup(name string) (K, bool) {
	k, ok := m.keys[name]
	return k, ok
}

// Value returns the current value of the named setting.
func (m *Manager[K]) Value(name string) (any, error) {
	e, ok := m.entries[name]
	if !ok {
		return nil, unknownKey(name)
	}
	return e.value(), nil
}

// Values returns every registered setting by name.
func (m *Manager[K]) Values() map[string]any {
	values := make(map[string]any, len(m.entries))
	for name, e := range m.entries {
		values[name] = e.value()
	}
	return values
}

// SetRaw assigns a decoded value, such as one parsed from JSON, to the
// named setting. The value is converted to the setting's type.
func (m *Manager[K]) SetRaw(name string, raw any) error {
	e, ok := m.entries[name]
	if !ok {
		return unknownKey(name)
	}
	return e.setRaw(raw)
}

// SetDefaults resets every setting that is not disabled to its default.
func (m *Manager[K]) SetDefaults() {
	for _, name := range m.order {
		m.entries[name].reset()
	}
}

// Subscribe registers fn to run after any setting changes value. The
// returned function removes the subscription.
func (m *Manager[K]) Subscribe(fn func(name string, value any)) func() {
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subscribers {
			if s.id == id {
				m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager[K]) notify(name string, value any) {
	subs := append([]subscriber(nil), m.subscribers...)
	for _, s := range subs {
		s.fn(name, value)
	}
}

// Save writes every registered setting, plus loaded values for keys that
// were never registered, to the settings file.
func (m *Manager[K]) Save(ctx context.Context) error {
	values := make(map[string]any, len(m.entries)+len(m.pending))
	for name, raw := range m.pending {
		values[name] = raw
	}
	for name, e := range m.entries {
		values[name] = e.value()
	}

	data, err := m.codec.Marshal(values)
	if err != nil {
		return encodeFailed(m.filename, err)
	}
	if err := m.store.Write(ctx, m.filename, data); err != nil {
		return err
	}

	m.logger.Info("settings saved",
		"file", m.filename,
		"format", m.codec.Name(),
		"keys", len(values),
	)
	return nil
}

// Load reads the settings file and assigns its values. A missing file
// leaves the settings unchanged. Values that cannot be applied are
// skipped and reported together in the returned error.
func (m *Manager[K]) Load(ctx context.Context) error {
	data, err := m.store.Read(ctx, m.filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			m.logger.Debug("no settings file", "file", m.filename)
			return nil
		}
		return err
	}

	values, err := m.codec.Unmarshal(data)
	if err != nil {
		return decodeFailed(m.filename, err)
	}

	var errs []error
	applied := 0
	for name, raw := range values {
		e, ok := m.entries[name]
		if !ok {
			m.pending[name] = raw
			continue
		}
		if err := e.setRaw(raw); err != nil {
			m.logger.Warn("setting not loaded", "key", name, "error", err)
			errs = append(errs, err)
			continue
		}
		applied++
	}

	m.logger.Info("settings loaded",
		"file", m.filename,
		"applied", applied,
		"pending", len(m.pending),
	)
	return errors.Join(errs...)
}

// entry is the type-erased view of a setting.
type entry interface {
	value() any
	setRaw(raw any) error
	reset()
	typeName() string
}

type typedEntry[T any] struct {
	name string
	cell *bindable.Bindable[T]
}

func (e *typedEntry[T]) value() any {
	return e.cell.Value()
}

func (e *typedEntry[T]) setRaw(raw any) error {
	v, err := convert[T](raw)
	if err != nil {
		return conversionFailed(e.name, e.typeName(), err)
	}
	return e.cell.SetValue(v)
}

func (e *typedEntry[T]) reset() {
	if !e.cell.Disabled() {
		e.cell.SetDefault()
	}
}

func (e *typedEntry[T]) typeName() string {
	return typeName[T]()
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}
