package history

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketCmd = []byte("cmd")

// BoltStore 基于 bbolt 的历史后端
// 键为大端序号，值为 "<时间戳>\x00<命令>"
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore 打开（或创建）数据库文件
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCmd)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Load 按序号顺序读出所有记录
func (s *BoltStore) Load() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCmd).ForEach(func(_, v []byte) error {
			if e, ok := decodeValue(v); ok {
				entries = append(entries, e)
			}
			return nil
		})
	})
	return entries, err
}

// Append 追加一条记录
func (s *BoltStore) Append(e Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCmd)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), encodeValue(e))
	})
}

// Clear 删除所有记录
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketCmd); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketCmd)
		return err
	})
}

// Close 关闭数据库
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func encodeValue(e Entry) []byte {
	return []byte(strconv.FormatUint(e.Timestamp, 10) + "\x00" + e.Command)
}

func decodeValue(v []byte) (Entry, bool) {
	i := bytes.IndexByte(v, 0)
	if i < 0 {
		return Entry{}, false
	}
	ts, err := strconv.ParseUint(string(v[:i]), 10, 64)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Command: string(v[i+1:]), Timestamp: ts}, i+1 < len(v)
}
