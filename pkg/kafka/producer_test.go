package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestPublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")

	type payload struct {
		Region string `json:"region"`
	}
	cases := []struct {
		value interface{}
		want  string
	}{
		{"plain", "plain"},
		{[]byte("raw"), "raw"},
		{payload{Region: "report"}, `{"region":"report"}`},
	}
	for i, tc := range cases {
		if err := p.Publish(context.Background(), "topic", []byte("k"), tc.value); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		got := w.msgs[len(w.msgs)-1]
		if string(got.Value) != tc.want || got.Topic != "topic" || string(got.Key) != "k" {
			t.Fatalf("case %d: unexpected message %+v", i, got)
		}
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("Close did not close writer")
	}
}

func TestPublishReturnsWriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewProducerWithWriter(w, "gzip")
	if err := p.Publish(context.Background(), "topic", nil, "x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseCompressionDefaultsToSnappy(t *testing.T) {
	if parseCompression("bogus") != kafka.Snappy {
		t.Fatalf("unknown compression should fall back to snappy")
	}
	if parseCompression("zstd") != kafka.Zstd {
		t.Fatalf("zstd not parsed")
	}
}
