package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flagbot/flagbot/internal/auton"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketMatch = "match"
	BucketRuns  = "runs"

	keyMatch = "current"
)

type Persistence interface {
	Init() error

	LoadMatchConfig() (configuration.MatchConfig, error)
	SaveMatchConfig(match configuration.MatchConfig) (err error)
	DeleteMatchConfig() (err error)

	// SaveRun appends a run to the history and returns its sequence number
	SaveRun(run auton.RunResult) (uint64, error)
	// LoadRuns returns the newest runs first, at most limit of them (0 = all)
	LoadRuns(limit int) ([]StoredRun, error)
	DeleteRuns() (err error)
}

// StoredRun is a run result together with its position in the history
type StoredRun struct {
	Sequence uint64          `json:"sequence"`
	Run      auton.RunResult `json:"run"`
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveMatchConfig stores the match selection, so it survives a restart
func (p persistence) SaveMatchConfig(match configuration.MatchConfig) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketMatch))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(keyMatch), data)
	})
}

// LoadMatchConfig returns os.ErrNotExist if no match selection was stored yet
func (p persistence) LoadMatchConfig() (configuration.MatchConfig, error) {
	var match configuration.MatchConfig

	db, err := p.openPersistence()
	if err != nil {
		return match, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketMatch))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(keyMatch))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &match)
		if err != nil {
			// unreadable data is dropped, the configured match applies again
			ui.Warning("Unable to unmarshal saved match config: %v", err)
			err := b.Delete([]byte(keyMatch))
			if err != nil {
				ui.Error("Unable to delete corrupt match config: %v", err)
			}
			return os.ErrNotExist
		}
		return nil
	})

	return match, err
}

func (p persistence) DeleteMatchConfig() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketMatch))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(keyMatch))
	})
}

func (p persistence) SaveRun(run auton.RunResult) (uint64, error) {
	db, err := p.openPersistence()
	if err != nil {
		return 0, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(run)
	if err != nil {
		return 0, err
	}

	var sequence uint64
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		sequence, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(sequence), data)
	})
	return sequence, err
}

func (p persistence) LoadRuns(limit int) ([]StoredRun, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	result := []StoredRun{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}
			var run auton.RunResult
			err := json.Unmarshal(v, &run)
			if err != nil {
				ui.Warning("Skipping unreadable run %d: %v", binary.BigEndian.Uint64(k), err)
				continue
			}
			result = append(result, StoredRun{
				Sequence: binary.BigEndian.Uint64(k),
				Run:      run,
			})
		}
		return nil
	})

	return result, err
}

func (p persistence) DeleteRuns() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketRuns)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(BucketRuns))
	})
}

// itob returns a big endian key, so cursor order is insertion order
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
