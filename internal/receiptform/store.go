package receiptform

import (
	"sync"

	"github.com/google/uuid"

	"github.com/victorlai/deliverydesk/constants"
	"github.com/victorlai/deliverydesk/internal/entity"
)

// EntryStore owns the ordered list of receipt entries for one form session.
// The list is never empty: removing the last entry replaces it with a fresh
// one. All operations are total.
//
// Recognition results arrive on goroutines, so the store is mutex-guarded;
// the token compare-and-discard in recognize.go runs under the same lock.
type EntryStore struct {
	mu      sync.Mutex
	entries []*entity.ReceiptEntry
}

// NewEntryStore seeds the store with one empty entry.
func NewEntryStore() *EntryStore {
	return &EntryStore{entries: []*entity.ReceiptEntry{newEntry()}}
}

func newEntry() *entity.ReceiptEntry {
	return &entity.ReceiptEntry{
		ID:          uuid.NewString(),
		ImageHeight: constants.DefaultImageHeight,
	}
}

// Add appends a fresh entry and returns a copy of it.
func (s *EntryStore) Add() entity.ReceiptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := newEntry()
	s.entries = append(s.entries, e)
	return *e
}

// List returns snapshot copies of all entries in order.
func (s *EntryStore) List() []entity.ReceiptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ReceiptEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

// Get returns a snapshot copy of one entry.
func (s *EntryStore) Get(id string) (entity.ReceiptEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.find(id); e != nil {
		return *e, true
	}
	return entity.ReceiptEntry{}, false
}

// Patch carries the user-editable fields of an entry; nil members are left
// untouched.
type Patch struct {
	DriverName  *string
	Amount      *string
	Note        *string
	ImageHeight *int
}

// Update applies a patch to the matching entry. Unknown ids are a no-op.
// Image heights are clamped to the display bounds.
func (s *EntryStore) Update(id string, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(id)
	if e == nil {
		return
	}
	if p.DriverName != nil {
		e.DriverName = *p.DriverName
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.ImageHeight != nil {
		e.ImageHeight = clampHeight(*p.ImageHeight)
	}
}

// Remove deletes the matching entry. If that empties the list, a fresh entry
// is synthesized so the form always has at least one row.
func (s *EntryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, newEntry())
	}
	s.entries = kept
}

func (s *EntryStore) find(id string) *entity.ReceiptEntry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func clampHeight(h int) int {
	if h < constants.MinImageHeight {
		return constants.MinImageHeight
	}
	if h > constants.MaxImageHeight {
		return constants.MaxImageHeight
	}
	return h
}

// beginRecognition marks the entry as recognizing under a fresh token and
// returns the token plus the image to recognize. ok is false when the entry
// does not exist or has no image attached.
func (s *EntryStore) beginRecognition(id string) (token, image string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(id)
	if e == nil || e.Image == "" {
		return "", "", false
	}
	token = uuid.NewString()
	e.OCRToken = token
	e.OCRStatus = constants.OCRStatusRecognizing
	e.OCRText = ""
	return token, e.Image, true
}

// applyRecognition writes a recognition outcome back to the entry, but only
// when the result's token still matches the entry's current token. A stale
// token means the request was superseded; the result is dropped with no
// mutation at all.
func (s *EntryStore) applyRecognition(id, token, text string, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(id)
	if e == nil || e.OCRToken != token {
		return
	}
	switch {
	case failed:
		e.OCRStatus = constants.OCRStatusFailed
	case text == "":
		e.OCRStatus = constants.OCRStatusEmpty
	default:
		e.OCRStatus = constants.OCRStatusDone
		e.OCRText = text
	}
}

// setImage attaches a normalized data URL to the entry.
func (s *EntryStore) setImage(id, dataURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.find(id)
	if e == nil {
		return false
	}
	e.Image = dataURL
	return true
}
