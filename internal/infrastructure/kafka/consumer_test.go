package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestStartOffset(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "empty defaults to earliest", in: "", want: kafka.FirstOffset},
		{name: "earliest", in: "earliest", want: kafka.FirstOffset},
		{name: "latest", in: "latest", want: kafka.LastOffset},
		{name: "latest mixed case padded", in: "  Latest ", want: kafka.LastOffset},
		{name: "unknown falls back to earliest", in: "newest", want: kafka.FirstOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startOffset(tt.in); got != tt.want {
				t.Fatalf("startOffset(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
