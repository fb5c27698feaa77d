package request

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Message is one side of a recorded exchange.
type Message struct {
	Headers http.Header `json:"headers,omitempty"`
	Body    string      `json:"body,omitempty"`
}

// Exchange is a request that was sent and the response it got.
type Exchange struct {
	StatusCode int       `json:"statusCode"`
	Request    Message   `json:"request"`
	Response   Message   `json:"response"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Store keeps the latest exchange per named request of a document.
type Store interface {
	Get(docPath, name string) (*Exchange, bool, error)
	Save(docPath, name string, ex *Exchange) error
}

// MemoryStore is a thread-safe in-memory Store.
type MemoryStore struct {
	mu        sync.RWMutex
	exchanges map[string]map[string]*Exchange
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{exchanges: make(map[string]map[string]*Exchange)}
}

// Get returns the exchange recorded for name in docPath.
func (s *MemoryStore) Get(docPath, name string) (*Exchange, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ex, ok := s.exchanges[docPath][name]
	return ex, ok, nil
}

// Save records ex, replacing any previous exchange for the same request.
func (s *MemoryStore) Save(docPath, name string, ex *Exchange) error {
	if ex == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exchanges[docPath] == nil {
		s.exchanges[docPath] = make(map[string]*Exchange)
	}
	s.exchanges[docPath][name] = ex
	return nil
}

// FileStore persists exchanges as one JSON file per document under Dir,
// so request variables survive between CLI runs.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// historyFile is keyed by a hash of the absolute document path so any path
// maps to a flat, valid file name.
func (s *FileStore) historyFile(docPath string) string {
	if abs, err := filepath.Abs(docPath); err == nil {
		docPath = abs
	}
	sum := sha256.Sum256([]byte(docPath))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".json")
}

type historyFile struct {
	Document  string               `json:"document"`
	Exchanges map[string]*Exchange `json:"exchanges"`
}

func (s *FileStore) load(docPath string) (*historyFile, error) {
	data, err := os.ReadFile(s.historyFile(docPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &historyFile{Document: docPath, Exchanges: make(map[string]*Exchange)}, nil
		}
		return nil, err
	}
	var h historyFile
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", s.historyFile(docPath), err)
	}
	if h.Exchanges == nil {
		h.Exchanges = make(map[string]*Exchange)
	}
	return &h, nil
}

// Get returns the persisted exchange for name in docPath. A missing history
// file is empty; an unreadable or corrupt one is an error.
func (s *FileStore) Get(docPath, name string) (*Exchange, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(docPath)
	if err != nil {
		return nil, false, err
	}
	ex, ok := h.Exchanges[name]
	return ex, ok, nil
}

// Save writes ex to the document's history file.
func (s *FileStore) Save(docPath, name string, ex *Exchange) error {
	if ex == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.load(docPath)
	if err != nil {
		return err
	}
	h.Exchanges[name] = ex

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.historyFile(docPath), data, 0o600)
}
