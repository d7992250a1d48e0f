package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var (
	bucketDocs    = []byte("docs")
	bucketChunks  = []byte("chunks")
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")

	keyModel = []byte("embedding_model")
)

// BoltStore persists documents, chunks and raw vectors so indexes can
// be rebuilt on startup. It backs the in-memory store rather than
// replacing it: queries always hit memory, bolt only absorbs writes
// and feeds rehydration.
type BoltStore struct {
	db *bolt.DB
}

// modelTag records which embedder produced the stored vectors. Vectors
// from a different model or dimension are useless, so a mismatch wipes
// the store.
type modelTag struct {
	ModelID   string `json:"model_id"`
	Dimension int    `json:"dimension"`
}

// DocRecord is one persisted document with everything needed to
// rebuild its index.
type DocRecord struct {
	Doc     domain.Document    `json:"doc"`
	Chunks  []domain.Chunk     `json:"chunks"`
	Vectors []port.VectorEntry `json:"vectors"`
}

// OpenBolt opens or creates the database file and its buckets.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketDocs, bucketChunks, bucketVectors, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

// EnsureModel checks the stored model tag against the active embedder.
// On mismatch all persisted data is dropped, since its vectors cannot
// be compared with new query vectors. Returns true when a reset
// happened.
func (s *BoltStore) EnsureModel(modelID string, dim int) (bool, error) {
	want := modelTag{ModelID: modelID, Dimension: dim}
	reset := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if raw := meta.Get(keyModel); raw != nil {
			var have modelTag
			if err := json.Unmarshal(raw, &have); err == nil && have == want {
				return nil
			}
			reset = true
			for _, name := range [][]byte{bucketDocs, bucketChunks, bucketVectors} {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
				if _, err := tx.CreateBucket(name); err != nil {
					return err
				}
			}
		}
		raw, err := json.Marshal(want)
		if err != nil {
			return err
		}
		return meta.Put(keyModel, raw)
	})
	if err != nil {
		return false, fmt.Errorf("ensure model tag: %w", err)
	}
	return reset, nil
}

// SaveDocument writes a document, its chunks and its vectors in one
// transaction.
func (s *BoltStore) SaveDocument(doc domain.Document, chunks []domain.Chunk, vectors []port.VectorEntry) error {
	docRaw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	chunksRaw, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encode chunks: %w", err)
	}
	vecsRaw, err := json.Marshal(vectors)
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}

	key := []byte(doc.ID)
	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketDocs).Put(key, docRaw); err != nil {
			return err
		}
		if err := tx.Bucket(bucketChunks).Put(key, chunksRaw); err != nil {
			return err
		}
		return tx.Bucket(bucketVectors).Put(key, vecsRaw)
	})
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}
	return nil
}

// DeleteDocument removes a document and its data. Deleting an unknown
// id is not an error here; the in-memory store owns that check.
func (s *BoltStore) DeleteDocument(id string) error {
	key := []byte(id)
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketDocs).Delete(key); err != nil {
			return err
		}
		if err := tx.Bucket(bucketChunks).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(bucketVectors).Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// LoadAll reads every persisted document for startup rehydration.
func (s *BoltStore) LoadAll() ([]DocRecord, error) {
	var records []DocRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		docs := tx.Bucket(bucketDocs)
		chunks := tx.Bucket(bucketChunks)
		vectors := tx.Bucket(bucketVectors)

		return docs.ForEach(func(key, docRaw []byte) error {
			var rec DocRecord
			if err := json.Unmarshal(docRaw, &rec.Doc); err != nil {
				return fmt.Errorf("decode document %s: %w", key, err)
			}
			if raw := chunks.Get(key); raw != nil {
				if err := json.Unmarshal(raw, &rec.Chunks); err != nil {
					return fmt.Errorf("decode chunks %s: %w", key, err)
				}
			}
			if raw := vectors.Get(key); raw != nil {
				if err := json.Unmarshal(raw, &rec.Vectors); err != nil {
					return fmt.Errorf("decode vectors %s: %w", key, err)
				}
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
