// Package cart implements a shopping cart persisted in a local-storage style
// key/value store.
//
// Every operation reads the stored cart, applies the change and writes it
// back. There is no conflict resolution, quota handling or transaction
// support; the storage is the source of truth.
package cart

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
)

// StorageKey is the key the cart is stored under.
const StorageKey = "cart"

// ErrInvalidItem is returned by Add for items without an id or with a
// non-positive quantity.
var ErrInvalidItem = errors.New("cart: invalid item")

// Storage mirrors the browser local-storage API.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
}

// Item is a line in the cart.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Cart reads and writes items through a Storage.
type Cart struct {
	storage Storage
}

// New returns a cart backed by storage.
func New(storage Storage) *Cart {
	return &Cart{storage: storage}
}

// Items returns the stored items. A missing or unreadable entry is an empty
// cart.
func (c *Cart) Items() []Item {
	raw, ok := c.storage.GetItem(StorageKey)
	if !ok || raw == "" {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []Item{}
	}
	return items
}

// Add adds item to the cart. Adding an id that is already present increases
// its quantity. The add is rejected with ErrInvalidItem when the cart
// total would no longer fit in an int.
func (c *Cart) Add(item Item) ([]Item, error) {
	if item.ID == "" || item.Quantity <= 0 {
		return nil, ErrInvalidItem
	}
	items := c.Items()
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	if total > math.MaxInt-item.Quantity {
		return nil, ErrInvalidItem
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			c.save(items)
			return items, nil
		}
	}
	items = append(items, item)
	c.save(items)
	return items, nil
}

// Remove drops the item with the given id. Unknown ids are ignored.
func (c *Cart) Remove(id string) []Item {
	items := c.Items()
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	c.save(out)
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.storage.RemoveItem(StorageKey)
}

// Count returns the total quantity of all items.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items() {
		n += it.Quantity
	}
	return n
}

func (c *Cart) save(items []Item) {
	data, _ := json.Marshal(items)
	c.storage.SetItem(StorageKey, string(data))
}

// MemoryStorage is a Storage held in memory. It is safe for concurrent use.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem implements Storage.
func (m *MemoryStorage) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

// SetItem implements Storage.
func (m *MemoryStorage) SetItem(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

// RemoveItem implements Storage.
func (m *MemoryStorage) RemoveItem(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}
