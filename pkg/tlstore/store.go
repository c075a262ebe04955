// Persists problem instances, optimization results and timetables in a
// single-file bolt database.
package tlstore

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/function61/gokit/encoding/jsonfile"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

var (
	bucketInstances  = []byte("instances")
	bucketResults    = []byte("results")
	bucketTimetables = []byte("timetables")
)

var ErrNotFound = errors.New("not found")

// InstanceID derives the storage key of a generated instance.
func InstanceID(instance *tl.ProblemInstance) string {
	return fmt.Sprintf("%s-%d", instance.Metadata.Size, instance.Metadata.Seed)
}

// ResultID derives the storage key of a result. There is one result per
// (instance, solver) pair, so rerunning a solver overwrites its previous
// result. A timetable shares the id of the result it was built from.
func ResultID(instanceID string, solverKey string) string {
	return instanceID + "/" + solverKey
}

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	// the file lock is exclusive, so without a timeout a second process
	// would block here forever while the server is running
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("tlstore: database locked by another process (server running?)")
		}

		return nil, fmt.Errorf("tlstore: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketInstances, bucketResults, bucketTimetables} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("tlstore: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutInstance(id string, instance *tl.ProblemInstance) error {
	return s.put(bucketInstances, id, instance)
}

func (s *Store) Instance(id string) (*tl.ProblemInstance, error) {
	instance := &tl.ProblemInstance{}
	if err := s.get(bucketInstances, id, instance); err != nil {
		return nil, err
	}

	return instance, nil
}

func (s *Store) InstanceIDs() ([]string, error) {
	return s.ids(bucketInstances, nil)
}

// DeleteInstance removes an instance along with its results and timetables.
func (s *Store) DeleteInstance(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketInstances).Get([]byte(id)) == nil {
			return fmt.Errorf("%s %s: %w", bucketInstances, id, ErrNotFound)
		}
		if err := tx.Bucket(bucketInstances).Delete([]byte(id)); err != nil {
			return err
		}

		prefix := []byte(id + "/")
		for _, bucket := range [][]byte{bucketResults, bucketTimetables} {
			if err := deletePrefix(tx.Bucket(bucket), prefix); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) PutResult(id string, result *tl.OptimizationResult) error {
	return s.put(bucketResults, id, result)
}

func (s *Store) Result(id string) (*tl.OptimizationResult, error) {
	result := &tl.OptimizationResult{}
	if err := s.get(bucketResults, id, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ResultIDs lists stored result ids, optionally scoped to one instance.
func (s *Store) ResultIDs(instanceID string) ([]string, error) {
	var prefix []byte
	if instanceID != "" {
		prefix = []byte(instanceID + "/")
	}

	return s.ids(bucketResults, prefix)
}

// DeleteResult removes a result and the timetable built from it.
func (s *Store) DeleteResult(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketResults).Get([]byte(id)) == nil {
			return fmt.Errorf("%s %s: %w", bucketResults, id, ErrNotFound)
		}
		if err := tx.Bucket(bucketResults).Delete([]byte(id)); err != nil {
			return err
		}

		return tx.Bucket(bucketTimetables).Delete([]byte(id))
	})
}

func (s *Store) PutTimetable(id string, timetable *tl.Timetable) error {
	return s.put(bucketTimetables, id, timetable)
}

func (s *Store) Timetable(id string) (*tl.Timetable, error) {
	timetable := &tl.Timetable{}
	if err := s.get(bucketTimetables, id, timetable); err != nil {
		return nil, err
	}

	return timetable, nil
}

func (s *Store) put(bucket []byte, id string, value interface{}) error {
	buf := &bytes.Buffer{}
	if err := jsonfile.Marshal(buf, value); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(id), buf.Bytes())
	})
}

func (s *Store) get(bucket []byte, id string, value interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		serialized := tx.Bucket(bucket).Get([]byte(id))
		if serialized == nil {
			return fmt.Errorf("%s %s: %w", bucket, id, ErrNotFound)
		}

		return jsonfile.UnmarshalDisallowUnknownFields(bytes.NewReader(serialized), value)
	})
}

func (s *Store) ids(bucket []byte, prefix []byte) ([]string, error) {
	ids := []string{}

	if err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(key []byte, _ []byte) error {
			if prefix == nil || bytes.HasPrefix(key, prefix) {
				ids = append(ids, string(key))
			}

			return nil
		})
	}); err != nil {
		return nil, err
	}

	return ids, nil
}

func deletePrefix(bucket *bolt.Bucket, prefix []byte) error {
	cursor := bucket.Cursor()

	for key, _ := cursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			return err
		}
	}

	return nil
}
