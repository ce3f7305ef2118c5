package database

import (
	"encoding/json"
	"fmt"

	"github.com/codeclash-games/codeclash/internal/byteutil"
	"github.com/codeclash-games/codeclash/internal/cache"
	"github.com/codeclash-games/codeclash/internal/database"
	"github.com/codeclash-games/codeclash/internal/database/match/model"
	bolt "go.etcd.io/bbolt"
)

const prefix = "match"

var (
	pLen        = len(prefix)
	ErrNotFound = fmt.Errorf("not found")
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) BytesBucket(roomCode int64) []byte {
	b := make([]byte, pLen+2<<5) // prefix + uint64
	copy(b, prefix[:])
	copy(b[pLen:], byteutil.EncodeInt64ToBytes(roomCode))
	return b
}

func (db *DB) SerialBucket(roomCode int64) string {
	return fmt.Sprintf("%s%d", prefix, roomCode)
}

// FetchByRoomCode returns every finished match recorded for the room, newest last.
func (db *DB) FetchByRoomCode(roomCode int64) ([]model.Record, error) {
	var list []model.Record
	bBucket := db.BytesBucket(roomCode)
	sBucket := db.SerialBucket(roomCode)
	if db.cache != nil {
		v, ok := db.cache.Get(sBucket)
		if ok {
			return v.([]model.Record), nil
		}
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBucket)
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var record model.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			list = append(list, record)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(sBucket, list)
	}

	return list, nil
}

func (db *DB) Add(m model.Record) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	bBucket := db.BytesBucket(m.RoomCode)
	sBucket := db.SerialBucket(m.RoomCode)

	b := tx.Bucket(bBucket)
	if b == nil {
		bs, err := tx.CreateBucket(db.BytesBucket(m.RoomCode))
		if err != nil {
			return fmt.Errorf("can not create bucket %d: %w", m.RoomCode, err)
		}
		b = bs
	}

	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put(binaryID, bytes); err != nil {
		return fmt.Errorf("put to bucket error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(sBucket)
	}

	return nil
}
