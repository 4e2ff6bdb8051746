// Package event holds the wire contracts published by the image service.
// They mirror the stored records' business fields but carry no id or event
// type, and optional fields stay nil when absent.
package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMissingField marks a message without a required identifier.
var ErrMissingField = errors.New("missing required field")

type LikeEventDto struct {
	UserID    uuid.UUID  `json:"userId"`
	ImageID   uuid.UUID  `json:"imageId"`
	Added     bool       `json:"added"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

// UnmarshalJSON also accepts "isAdded" for the added flag.
func (d *LikeEventDto) UnmarshalJSON(data []byte) error {
	type wire LikeEventDto
	var aux struct {
		wire
		IsAdded *bool `json:"isAdded"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = LikeEventDto(aux.wire)
	if aux.IsAdded != nil {
		d.Added = *aux.IsAdded
	}
	return nil
}

func (d LikeEventDto) Validate() error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("like event userId: %w", ErrMissingField)
	}
	if d.ImageID == uuid.Nil {
		return fmt.Errorf("like event imageId: %w", ErrMissingField)
	}
	return nil
}

type CommentEventDto struct {
	UserID    uuid.UUID  `json:"userId"`
	ImageID   uuid.UUID  `json:"imageId"`
	CommentID uuid.UUID  `json:"commentId"`
	Created   bool       `json:"created"`
	Content   *string    `json:"content,omitempty"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

// UnmarshalJSON also accepts "isCreated" for the created flag.
func (d *CommentEventDto) UnmarshalJSON(data []byte) error {
	type wire CommentEventDto
	var aux struct {
		wire
		IsCreated *bool `json:"isCreated"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = CommentEventDto(aux.wire)
	if aux.IsCreated != nil {
		d.Created = *aux.IsCreated
	}
	return nil
}

func (d CommentEventDto) Validate() error {
	switch {
	case d.UserID == uuid.Nil:
		return fmt.Errorf("comment event userId: %w", ErrMissingField)
	case d.ImageID == uuid.Nil:
		return fmt.Errorf("comment event imageId: %w", ErrMissingField)
	case d.CommentID == uuid.Nil:
		return fmt.Errorf("comment event commentId: %w", ErrMissingField)
	}
	return nil
}
