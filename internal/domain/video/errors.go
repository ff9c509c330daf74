package video

import "errors"

var (
	// ErrNotFound indicates no video exists with the given id.
	ErrNotFound = errors.New("video not found")
	// ErrEmptyComment indicates a comment with no text.
	ErrEmptyComment = errors.New("comment cannot be empty")
	// ErrEmptyTitle indicates a video with no title.
	ErrEmptyTitle = errors.New("video title cannot be empty")
	// ErrInvalidStatus indicates an unknown workflow status.
	ErrInvalidStatus = errors.New("invalid video status")
)
