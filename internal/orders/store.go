package orders

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

// Store reads and writes order records under a directory, one file per
// order, named by order id.
type Store interface {
	Save(order Order) error
	Get(orderID string) (Order, error)
	Last() (Order, error)
}

type fileStore struct {
	dir string
}

// NewFileStore returns a Store keeping one JSON file per order in dir.
func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

func (s *fileStore) path(orderID string) string {
	return filepath.Join(s.dir, orderID+".json")
}

// Save writes the order record. A same-id write overwrites the prior record,
// matching the documented same-second collision behavior.
func (s *fileStore) Save(order Order) error {
	if err := jsonfile.Write(s.path(order.OrderID), order); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "writing order record").
			WithDetails(map[string]any{"order_id": order.OrderID})
	}
	return nil
}

// Get loads one order by id.
func (s *fileStore) Get(orderID string) (Order, error) {
	var order Order
	err := jsonfile.Read(s.path(orderID), &order)
	if err != nil {
		if os.IsNotExist(err) {
			return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "no such order").
				WithDetails(map[string]any{"order_id": orderID})
		}
		return Order{}, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "reading order record").
			WithDetails(map[string]any{"order_id": orderID})
	}
	return order, nil
}

// Last returns the most recent order. Order ids embed a second-resolution
// timestamp, so lexicographic order is chronological order.
func (s *fileStore) Last() (Order, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "no orders placed yet")
		}
		return Order{}, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "listing order records")
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	if len(ids) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "no orders placed yet")
	}

	sort.Strings(ids)
	return s.Get(ids[len(ids)-1])
}
