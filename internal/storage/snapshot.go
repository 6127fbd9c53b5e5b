package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"focusdock/internal/core/model"
)

const stateFileName = "state.json"

// SnapshotStore persists the timer snapshot as a JSON document at a
// fixed per-user path. Disk is best-effort durability: loads fall back
// to "nothing found" and saves log-and-continue, so I/O trouble never
// blocks a state transition.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore resolves the per-user state path for the app.
func NewSnapshotStore(appName string) (*SnapshotStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{path: filepath.Join(configDir, appName, stateFileName)}, nil
}

// NewSnapshotStoreAt uses an explicit file path.
func NewSnapshotStoreAt(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load reads the persisted snapshot. A missing, unreadable, or corrupt
// file reports no snapshot found; the caller proceeds with defaults.
func (store *SnapshotStore) Load() (model.Snapshot, bool) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("snapshot load: %v", err)
		}
		return model.Snapshot{}, false
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(rawData, &snapshot); err != nil {
		log.Printf("snapshot parse: %v", err)
		return model.Snapshot{}, false
	}
	if snapshot.DailyStats == nil {
		snapshot.DailyStats = map[string]int{}
	}
	return snapshot, true
}

// Save writes the full snapshot, replacing the previous one only once
// the new document is fully on disk. A crash mid-write leaves the last
// successful save intact.
func (store *SnapshotStore) Save(snapshot model.Snapshot) {
	serialized, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Printf("snapshot marshal: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		log.Printf("snapshot dir: %v", err)
		return
	}

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, serialized, 0o644); err != nil {
		log.Printf("snapshot write: %v", err)
		return
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		log.Printf("snapshot rename: %v", err)
	}
}
