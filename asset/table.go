package asset

import "sort"

// Table maps image names to loaded handles.
type Table struct {
	images map[string]*Image
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{images: make(map[string]*Image)}
}

// Register stores an image by name.
func (t *Table) Register(name string, img *Image) {
	if t == nil || name == "" || img == nil {
		return
	}
	if t.images == nil {
		t.images = make(map[string]*Image)
	}
	t.images[name] = img
}

// Get returns the image registered under name.
func (t *Table) Get(name string) (*Image, bool) {
	if t == nil || name == "" {
		return nil, false
	}
	img, ok := t.images[name]
	return img, ok
}

// Len returns the number of registered images.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.images)
}

// Names returns the registered names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.images))
	for name := range t.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
