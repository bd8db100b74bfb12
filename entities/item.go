package entities

import (
	"time"

	"github.com/google/uuid"
)

// Item is one entry of a playlist. Implementations are immutable value
// types; the store and the buffer window only ever swap whole items.
type Item interface {
	ID() string
	Behavior() Behavior
	// Equal reports whether the other item refers to the same content.
	// Matching is by id plus variant fields, not by pointer.
	Equal(other Item) bool
}

// TimedItem is an item whose duration is fixed up-front rather than read
// from the media once opened.
type TimedItem interface {
	Item
	Duration() time.Duration
}

type ImageItem struct {
	id       string
	url      string
	duration time.Duration
	behavior Behavior
}

func NewImageItem(id string, url string, duration time.Duration, behavior Behavior) *ImageItem {
	return &ImageItem{
		id:       orGeneratedID(id),
		url:      url,
		duration: duration,
		behavior: behavior,
	}
}

func (item *ImageItem) ID() string {
	return item.id
}

func (item *ImageItem) URL() string {
	return item.url
}

func (item *ImageItem) Duration() time.Duration {
	return item.duration
}

func (item *ImageItem) Behavior() Behavior {
	return item.behavior
}

func (item *ImageItem) Equal(other Item) bool {
	otherImage, ok := other.(*ImageItem)

	if !ok {
		return false
	}

	return item.id == otherImage.id &&
		item.url == otherImage.url &&
		item.duration == otherImage.duration
}

type VideoItem struct {
	id       string
	url      string
	behavior Behavior
}

func NewVideoItem(id string, url string, behavior Behavior) *VideoItem {
	return &VideoItem{
		id:       orGeneratedID(id),
		url:      url,
		behavior: behavior,
	}
}

func (item *VideoItem) ID() string {
	return item.id
}

func (item *VideoItem) URL() string {
	return item.url
}

func (item *VideoItem) Behavior() Behavior {
	return item.behavior
}

func (item *VideoItem) Equal(other Item) bool {
	otherVideo, ok := other.(*VideoItem)

	if !ok {
		return false
	}

	return item.id == otherVideo.id && item.url == otherVideo.url
}

// CustomItem is a non-media placeholder that advances on a timer.
type CustomItem struct {
	id       string
	duration time.Duration
	behavior Behavior
}

func NewCustomItem(id string, duration time.Duration, behavior Behavior) *CustomItem {
	return &CustomItem{
		id:       orGeneratedID(id),
		duration: duration,
		behavior: behavior,
	}
}

func (item *CustomItem) ID() string {
	return item.id
}

func (item *CustomItem) Duration() time.Duration {
	return item.duration
}

func (item *CustomItem) Behavior() Behavior {
	return item.behavior
}

func (item *CustomItem) Equal(other Item) bool {
	otherCustom, ok := other.(*CustomItem)

	if !ok {
		return false
	}

	return item.id == otherCustom.id && item.duration == otherCustom.duration
}

// ErrorItem is the sentinel shown in place of an item that failed to load
// or play. It keeps a fixed short duration so the playlist still advances
// past it.
type ErrorItem struct {
	id       string
	behavior Behavior
}

// ErrorItemDuration is how long an error sentinel stays on screen before
// the playlist auto-advances past it.
const ErrorItemDuration = 3 * time.Second

func NewErrorItem(id string, behavior Behavior) *ErrorItem {
	return &ErrorItem{
		id:       orGeneratedID(id),
		behavior: behavior,
	}
}

func (item *ErrorItem) ID() string {
	return item.id
}

func (item *ErrorItem) Duration() time.Duration {
	return ErrorItemDuration
}

func (item *ErrorItem) Behavior() Behavior {
	return item.behavior
}

func (item *ErrorItem) Equal(other Item) bool {
	otherError, ok := other.(*ErrorItem)

	if !ok {
		return false
	}

	return item.id == otherError.id
}

func orGeneratedID(id string) string {
	if id != "" {
		return id
	}

	return uuid.NewString()
}

// ItemsEqual reports whether a and b are the same item, tolerating nils.
func ItemsEqual(a Item, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}

// Verify variants implement Item
var _ Item = (*ImageItem)(nil)
var _ Item = (*VideoItem)(nil)
var _ Item = (*CustomItem)(nil)
var _ Item = (*ErrorItem)(nil)

var _ TimedItem = (*ImageItem)(nil)
var _ TimedItem = (*CustomItem)(nil)
var _ TimedItem = (*ErrorItem)(nil)
