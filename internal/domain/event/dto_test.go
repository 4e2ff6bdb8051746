package event_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/event"
)

func TestLikeEventDto_Decode(t *testing.T) {
	userID, imageID := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		payload   string
		wantAdded bool
		wantTime  time.Time
	}{
		{
			name:      "publisher field name",
			payload:   `{"userId":"` + userID.String() + `","imageId":"` + imageID.String() + `","added":true,"timestamp":"2024-05-01T12:30:45.123"}`,
			wantAdded: true,
			wantTime:  time.Date(2024, 5, 1, 12, 30, 45, 123000000, time.UTC),
		},
		{
			name:      "isAdded alias",
			payload:   `{"userId":"` + userID.String() + `","imageId":"` + imageID.String() + `","isAdded":true}`,
			wantAdded: true,
		},
		{
			name:     "rfc3339 with offset",
			payload:  `{"userId":"` + userID.String() + `","imageId":"` + imageID.String() + `","added":false,"timestamp":"2024-05-01T14:30:45+02:00"}`,
			wantTime: time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name:     "array form",
			payload:  `{"userId":"` + userID.String() + `","imageId":"` + imageID.String() + `","added":false,"timestamp":[2024,5,1,12,30]}`,
			wantTime: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:    "explicit null timestamp",
			payload: `{"userId":"` + userID.String() + `","imageId":"` + imageID.String() + `","added":false,"timestamp":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto event.LikeEventDto
			if err := json.Unmarshal([]byte(tt.payload), &dto); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if dto.UserID != userID || dto.ImageID != imageID {
				t.Fatalf("ids not decoded: %+v", dto)
			}
			if dto.Added != tt.wantAdded {
				t.Fatalf("expected added=%v, got %v", tt.wantAdded, dto.Added)
			}
			if tt.wantTime.IsZero() {
				if dto.Timestamp != nil {
					t.Fatalf("expected absent timestamp, got %v", dto.Timestamp.Value())
				}
				return
			}
			if !dto.Timestamp.Value().Equal(tt.wantTime) {
				t.Fatalf("expected %v, got %v", tt.wantTime, dto.Timestamp.Value())
			}
		})
	}
}

func TestCommentEventDto_ContentPresence(t *testing.T) {
	base := `"userId":"` + uuid.NewString() + `","imageId":"` + uuid.NewString() + `","commentId":"` + uuid.NewString() + `"`

	var absent event.CommentEventDto
	if err := json.Unmarshal([]byte(`{`+base+`,"created":true}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Content != nil {
		t.Fatalf("expected nil content, got %q", *absent.Content)
	}
	if !absent.Created {
		t.Fatalf("expected created=true")
	}

	var empty event.CommentEventDto
	if err := json.Unmarshal([]byte(`{`+base+`,"isCreated":true,"content":""}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if empty.Content == nil || *empty.Content != "" {
		t.Fatalf("expected explicit empty content")
	}
	if !empty.Created {
		t.Fatalf("expected isCreated alias to set created")
	}
}

func TestValidate_MissingIdentifiers(t *testing.T) {
	like := event.LikeEventDto{UserID: uuid.New()}
	if err := like.Validate(); !errors.Is(err, event.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	comment := event.CommentEventDto{UserID: uuid.New(), ImageID: uuid.New()}
	if err := comment.Validate(); !errors.Is(err, event.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	comment.CommentID = uuid.New()
	if err := comment.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	for _, payload := range []string{`"yesterday"`, `[2024]`, `true`} {
		var ts event.Timestamp
		if err := json.Unmarshal([]byte(payload), &ts); err == nil {
			t.Fatalf("expected error for %s", payload)
		}
	}
}

func TestTimestamp_MarshalsAsRFC3339(t *testing.T) {
	dto := event.LikeEventDto{
		UserID:    uuid.New(),
		ImageID:   uuid.New(),
		Added:     true,
		Timestamp: event.NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}

	data, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded event.LikeEventDto
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Timestamp.Value().Equal(dto.Timestamp.Value()) || decoded.Added != true {
		t.Fatalf("unexpected decode of %s: %+v", data, decoded)
	}
}
