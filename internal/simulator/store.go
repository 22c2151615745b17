package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/imamik/cbdctl/internal/platform/cbd"
)

// ErrNotFound is returned when a cluster or SSH key does not exist.
var ErrNotFound = errors.New("not found")

// Store persists simulated control-plane objects.
type Store interface {
	SaveCluster(ctx context.Context, c *cbd.Cluster) error
	GetCluster(ctx context.Context, id string) (*cbd.Cluster, error)
	DeleteCluster(ctx context.Context, id string) error
	ListClusters(ctx context.Context) ([]*cbd.Cluster, error)
	SaveSSHKey(ctx context.Context, k *SSHKey) error
	GetSSHKey(ctx context.Context, name string) (*SSHKey, error)
	Close() error
}

// BadgerStore implements Store with Badger.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens the database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil
	opts = opts.WithValueLogFileSize(1 << 20) // smaller value log for local runs
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func clusterKey(id string) []byte {
	return []byte("cluster:" + id)
}

func sshKeyKey(name string) []byte {
	return []byte("sshkey:" + name)
}

func (s *BadgerStore) SaveCluster(ctx context.Context, c *cbd.Cluster) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return txn.Set(clusterKey(c.ID), data)
	})
}

func (s *BadgerStore) GetCluster(ctx context.Context, id string) (*cbd.Cluster, error) {
	var out cbd.Cluster
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(clusterKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BadgerStore) DeleteCluster(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(clusterKey(id))
	})
}

func (s *BadgerStore) ListClusters(ctx context.Context) ([]*cbd.Cluster, error) {
	var out []*cbd.Cluster
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("cluster:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var c cbd.Cluster
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &c)
			})
			if err != nil {
				return err
			}
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) SaveSSHKey(ctx context.Context, k *SSHKey) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(k)
		if err != nil {
			return err
		}
		return txn.Set(sshKeyKey(k.Name), data)
	})
}

func (s *BadgerStore) GetSSHKey(ctx context.Context, name string) (*SSHKey, error) {
	var out SSHKey
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sshKeyKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
