package domain

// Store keys for persisted sync state.
const (
	// KeyCursor holds the highest pull request ID processed by a full sync.
	KeyCursor = "lastId"

	// KeyOpenSet holds the pull requests still awaiting closure.
	KeyOpenSet = "openPRs"
)

// OpenItem is a tracked pull request believed still open.
type OpenItem struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

// OpenSet is an insertion-ordered set of open items keyed by ID.
// The zero value is an empty set ready to use.
type OpenSet struct {
	items []OpenItem
	index map[int64]struct{}
}

// NewOpenSet builds a set from items, dropping duplicate IDs.
func NewOpenSet(items ...OpenItem) *OpenSet {
	s := &OpenSet{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts the item if its ID is absent. Returns true if inserted.
func (s *OpenSet) Add(item OpenItem) bool {
	if s.index == nil {
		s.index = make(map[int64]struct{})
	}
	if _, ok := s.index[item.ID]; ok {
		return false
	}
	s.index[item.ID] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains reports whether an item with this ID is in the set.
func (s *OpenSet) Contains(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of items.
func (s *OpenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *OpenSet) Items() []OpenItem {
	if s == nil {
		return []OpenItem{}
	}
	out := make([]OpenItem, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the item IDs in insertion order.
func (s *OpenSet) IDs() []int64 {
	ids := make([]int64, 0, s.Len())
	if s == nil {
		return ids
	}
	for _, it := range s.items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Union returns a new set holding s's items followed by other's items
// that s does not already contain.
func (s *OpenSet) Union(other *OpenSet) *OpenSet {
	out := NewOpenSet(s.Items()...)
	for _, it := range other.Items() {
		out.Add(it)
	}
	return out
}

// SyncState is the durable state carried between runs.
type SyncState struct {
	// Cursor is the highest pull request ID fully processed by the last
	// successful full sync. Zero before the first run.
	Cursor int64

	// Open holds relevant pull requests last observed not closed.
	Open *OpenSet
}

// NewSyncState returns the state used when the store holds nothing yet.
func NewSyncState() *SyncState {
	return &SyncState{Open: NewOpenSet()}
}
