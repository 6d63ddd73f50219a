package logging

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solidgo/internal/storage"
	storeMocks "solidgo/internal/storage/mocks"
)

func entry(msg string) Entry {
	return Entry{Time: time.Now().UTC(), Level: LevelInfo, Message: msg}
}

func TestObjectSinkFlushByCount(t *testing.T) {
	mStore := new(storeMocks.MockStorage)

	var uploaded string
	mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "logs/") && strings.HasSuffix(key, ".ndjson")
	}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
		return opt.ContentType == "application/x-ndjson" && opt.Size > 0
	})).Run(func(args mock.Arguments) {
		b, err := io.ReadAll(args.Get(2).(io.Reader))
		require.NoError(t, err)
		uploaded = string(b)
	}).Return(storage.ObjectInfo{}, nil).Once()

	sink := NewObjectSink(mStore, ObjectSinkOptions{
		FlushCount:    2,
		FlushInterval: time.Hour, // keep the timer out of the test
	})
	defer sink.Close()

	require.NoError(t, sink.Write(entry("one")))
	require.NoError(t, sink.Write(entry("two")))

	mStore.AssertExpectations(t)
	lines := strings.Split(strings.TrimSpace(uploaded), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"one"`)
	assert.Contains(t, lines[1], `"two"`)
}

func TestObjectSinkFlushOnClose(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, nil).Once()

	sink := NewObjectSink(mStore, ObjectSinkOptions{
		FlushCount:    100,
		FlushInterval: time.Hour,
	})

	require.NoError(t, sink.Write(entry("pending")))
	require.NoError(t, sink.Close())

	mStore.AssertExpectations(t)
}

func TestObjectSinkConcurrentClose(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, nil)

	sink := NewObjectSink(mStore, ObjectSinkOptions{FlushInterval: time.Hour})
	require.NoError(t, sink.Write(entry("pending")))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() { sink.Close() })
		}()
	}
	wg.Wait()
}

func TestObjectSinkCloseEmpty(t *testing.T) {
	mStore := new(storeMocks.MockStorage)

	sink := NewObjectSink(mStore, ObjectSinkOptions{FlushInterval: time.Hour})
	require.NoError(t, sink.Close())

	mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectSinkKeepsBatchOnUploadFailure(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("bucket gone")).Once()
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, nil).Once()

	sink := NewObjectSink(mStore, ObjectSinkOptions{
		FlushCount:    1,
		FlushInterval: time.Hour,
	})
	defer sink.Close()

	log := New(LevelInfo, sink)

	// The upload fails, but the entry is buffered for retry, not lost.
	log.Info("retained", nil)
	assert.Equal(t, uint64(0), log.Dropped())

	// The failed batch stays buffered and goes out with the next flush.
	require.NoError(t, sink.Flush())
	mStore.AssertExpectations(t)
}

func TestObjectSinkFlushReportsUploadFailure(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("bucket gone"))

	sink := NewObjectSink(mStore, ObjectSinkOptions{
		FlushCount:    100,
		FlushInterval: time.Hour,
	})

	require.NoError(t, sink.Write(entry("pending")))
	assert.ErrorContains(t, sink.Flush(), "upload log batch")
	assert.ErrorContains(t, sink.Close(), "upload log batch")
}
