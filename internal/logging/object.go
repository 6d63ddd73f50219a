package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"solidgo/internal/storage"
)

// ObjectSinkOptions configure batching for the object storage sink.
type ObjectSinkOptions struct {
	// KeyPrefix is prepended to every object key (e.g. "logs").
	KeyPrefix string
	// FlushCount uploads a batch once it holds this many entries.
	FlushCount int
	// FlushInterval uploads a non-empty batch at least this often.
	FlushInterval time.Duration
}

// ObjectSink batches entries and uploads each batch as one newline-delimited
// JSON object to S3-compatible storage. A batch is flushed when it reaches
// FlushCount entries, when FlushInterval elapses, and on Close.
type ObjectSink struct {
	store storage.Storage
	opts  ObjectSinkOptions

	mu    sync.Mutex
	buf   bytes.Buffer
	count int

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewObjectSink creates the sink and starts its background flusher.
func NewObjectSink(store storage.Storage, opts ObjectSinkOptions) *ObjectSink {
	if opts.FlushCount <= 0 {
		opts.FlushCount = 100
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 30 * time.Second
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "logs"
	}

	s := &ObjectSink{
		store: store,
		opts:  opts,
		done:  make(chan struct{}),
	}

	s.wg.Add(1)
	go s.flushLoop()

	return s
}

// Write buffers the entry. A full batch triggers an upload, but upload
// failures are not reported here: the batch is retained and retried on the
// next flush, so the entry is not lost and must not count as dropped.
func (s *ObjectSink) Write(e Entry) error {
	line, err := json.Marshal(encodeEntry(e))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Write(line)
	s.buf.WriteByte('\n')
	s.count++

	if s.count >= s.opts.FlushCount {
		_ = s.flushLocked()
	}
	return nil
}

// Flush uploads the current batch, if any.
func (s *ObjectSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Close stops the background flusher and uploads any remaining entries.
// Close is safe to call concurrently and more than once.
func (s *ObjectSink) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	s.wg.Wait()
	return s.Flush()
}

func (s *ObjectSink) flushLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.Flush()
		case <-s.done:
			return
		}
	}
}

// flushLocked uploads the buffered batch. Callers must hold mu.
// On upload failure the batch is kept for the next flush.
func (s *ObjectSink) flushLocked() error {
	if s.count == 0 {
		return nil
	}

	data := make([]byte, s.buf.Len())
	copy(data, s.buf.Bytes())
	key := s.objectKey()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/x-ndjson",
	})
	if err != nil {
		return fmt.Errorf("upload log batch: %w", err)
	}

	s.buf.Reset()
	s.count = 0
	return nil
}

// objectKey partitions batches by day so retention tooling can prune by
// prefix: <prefix>/2006/01/02/<uuid>.ndjson
func (s *ObjectSink) objectKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("%s/%s/%s.ndjson", s.opts.KeyPrefix, now.Format("2006/01/02"), uuid.NewString())
}

var _ Sink = (*ObjectSink)(nil)
