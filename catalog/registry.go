package catalog

import (
	"sync"

	"protoforge/prototype"
)

// CollisionPolicy decides what happens when a batch carries a (type, name)
// pair the registry already holds.
type CollisionPolicy int

const (
	// RejectDuplicate drops the colliding record and reports a DuplicateError.
	// The registry retains the first record.
	RejectDuplicate CollisionPolicy = iota
	// Overwrite replaces the existing record. References bind by identifier,
	// not record identity, so previously bound references stay valid; callers
	// must run a fresh resolution pass after any overwrite.
	Overwrite
)

func (p CollisionPolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	default:
		return "reject"
	}
}

// EventKind labels a registry mutation for subscribers.
type EventKind string

const (
	EventAdded    EventKind = "added"
	EventReplaced EventKind = "replaced"
	EventRemoved  EventKind = "removed"
)

// Event describes one registry mutation. Events fire after the batch commits,
// outside the registry lock.
type Event struct {
	Kind EventKind    `json:"event"`
	Type string       `json:"type"`
	Name string       `json:"name"`
	ID   prototype.ID `json:"id"`
}

// RecordSummary is the read-only listing form of one registry record.
type RecordSummary struct {
	Type string   `json:"type"`
	Name string   `json:"name"`
	ID   string   `json:"id"`
	Tags []string `json:"tags,omitempty"`
}

// Registry owns every loaded prototype instance, keyed by (type, id). A single
// coordinating context serializes writes; concurrent readers are safe, and
// once a resolution pass completes records no longer change.
type Registry struct {
	mu      sync.RWMutex
	records map[prototype.Identifier]prototype.Prototype
	order   []prototype.Identifier
	subs    []func(Event)
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[prototype.Identifier]prototype.Prototype)}
}

// Subscribe registers a callback for registry events. Callbacks run on the
// mutating goroutine after the write lock is released and must not block.
func (r *Registry) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// InsertBatch adds a batch of decoded records. Insertion is purely additive
// bookkeeping: no reference resolution happens here. The whole batch commits
// under one write lock, so readers never observe a partial batch.
func (r *Registry) InsertBatch(records []prototype.Prototype, policy CollisionPolicy) []error {
	var errs []error
	var events []Event

	r.mu.Lock()
	for _, record := range records {
		ident := prototype.Identify(record)
		if _, exists := r.records[ident]; exists {
			if policy == Overwrite {
				r.records[ident] = record
				events = append(events, Event{Kind: EventReplaced, Type: ident.Type, Name: record.PrototypeName(), ID: ident.ID})
				continue
			}
			errs = append(errs, &DuplicateError{Type: ident.Type, Name: record.PrototypeName()})
			continue
		}
		r.records[ident] = record
		r.order = append(r.order, ident)
		events = append(events, Event{Kind: EventAdded, Type: ident.Type, Name: record.PrototypeName(), ID: ident.ID})
	}
	subs := append(make([]func(Event), 0, len(r.subs)), r.subs...)
	r.mu.Unlock()

	r.publish(subs, events)
	return errs
}

// Resolve runs the resolution pass: every unresolved reference in every record
// is bound against the fully inserted registry. The pass never creates or
// removes records, so it is order-independent and idempotent; it returns the
// full diagnostic batch and the caller decides whether dangling references are
// fatal.
func (r *Registry) Resolve() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, ident := range r.order {
		record := r.records[ident]
		from := ident
		fromName := record.PrototypeName()
		prototype.WalkRefs(record, func(path string, ref prototype.RefField) {
			if ref.Resolved() {
				return
			}
			target := prototype.Identifier{Type: ref.ExpectedType(), ID: ref.TargetID()}
			if _, ok := r.records[target]; ok {
				if err := ref.Bind(target); err != nil {
					errs = append(errs, err)
				}
				return
			}
			if foundType, ok := r.typeOfKey(ref.TargetID(), target.Type); ok {
				errs = append(errs, &RefTypeMismatchError{
					From:       from,
					FromName:   fromName,
					Field:      path,
					TargetType: target.Type,
					FoundType:  foundType,
					TargetKey:  ref.TargetKey(),
				})
				return
			}
			errs = append(errs, &DanglingRefError{
				From:       from,
				FromName:   fromName,
				Field:      path,
				TargetType: target.Type,
				TargetKey:  ref.TargetKey(),
			})
		})
	}
	return errs
}

// typeOfKey scans for the same key under another discriminant, to distinguish
// a type mismatch from a plain dangling reference.
func (r *Registry) typeOfKey(id prototype.ID, excludeType string) (string, bool) {
	for _, ident := range r.order {
		if ident.ID == id && ident.Type != excludeType {
			return ident.Type, true
		}
	}
	return "", false
}

// BindAssets walks every asset token in the registry and attaches the handle
// provided by the host resolver. Already-resolved tokens are skipped, so the
// host may call this after each reload.
func (r *Registry) BindAssets(resolver prototype.AssetResolver) []error {
	if resolver == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, ident := range r.order {
		record := r.records[ident]
		from := ident
		prototype.WalkAssets(record, func(path string, asset prototype.AssetField) {
			if asset.Resolved() || asset.Path() == "" {
				return
			}
			handle, err := resolver.ResolveAsset(asset.Path())
			if err != nil {
				errs = append(errs, &AssetBindError{From: from, Field: path, Path: asset.Path(), Err: err})
				return
			}
			asset.BindHandle(handle)
		})
	}
	return errs
}

// Lookup returns the record stored under (type, id).
func (r *Registry) Lookup(typeName string, id prototype.ID) (prototype.Prototype, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[prototype.Identifier{Type: typeName, ID: id}]
	return record, ok
}

// LookupName returns the record stored under (type, name).
func (r *Registry) LookupName(typeName, name string) (prototype.Prototype, bool) {
	return r.Lookup(typeName, prototype.NameID(name))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Summaries returns a stable-order listing of every record.
func (r *Registry) Summaries() []RecordSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RecordSummary, 0, len(r.order))
	for _, ident := range r.order {
		record := r.records[ident]
		out = append(out, RecordSummary{
			Type: ident.Type,
			Name: record.PrototypeName(),
			ID:   ident.ID.String(),
			Tags: append([]string(nil), record.PrototypeTags()...),
		})
	}
	return out
}

// Clear removes every record, emitting a Removed event per record. Only the
// host's explicit clear/reload destroys records.
func (r *Registry) Clear() {
	r.mu.Lock()
	events := make([]Event, 0, len(r.order))
	for _, ident := range r.order {
		record := r.records[ident]
		events = append(events, Event{Kind: EventRemoved, Type: ident.Type, Name: record.PrototypeName(), ID: ident.ID})
	}
	r.records = make(map[prototype.Identifier]prototype.Prototype)
	r.order = nil
	subs := append(make([]func(Event), 0, len(r.subs)), r.subs...)
	r.mu.Unlock()

	r.publish(subs, events)
}

func (r *Registry) publish(subs []func(Event), events []Event) {
	for _, fn := range subs {
		for _, event := range events {
			fn(event)
		}
	}
}

// Get returns the typed record stored under (T's discriminant, name).
func Get[T prototype.Prototype](r *Registry, name string) (*T, bool) {
	return GetID[T](r, prototype.NameID(name))
}

// GetID returns the typed record stored under (T's discriminant, id).
func GetID[T prototype.Prototype](r *Registry, id prototype.ID) (*T, bool) {
	var zero T
	record, ok := r.Lookup(zero.PrototypeType(), id)
	if !ok {
		return nil, false
	}
	typed, ok := any(record).(*T)
	return typed, ok
}

// Deref follows a reference to its target record. References are non-owning:
// this is a registry lookup, valid whether or not the reference is bound yet.
func Deref[T prototype.Prototype](r *Registry, ref prototype.Ref[T]) (*T, bool) {
	return GetID[T](r, ref.TargetID())
}
