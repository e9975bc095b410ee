package enum

// Tier identifies one of the two limiter windows applied to a gated action.
type Tier int

const (
	TierConsecutive Tier = iota
	TierDaily
)

func (t Tier) String() string {
	return [...]string{"consecutive", "daily"}[t]
}

type SongType string

const (
	SongTypeSingle SongType = "SINGLE"
	SongTypeAlbum  SongType = "ALBUM"
)

func (s SongType) Valid() bool {
	return s == SongTypeSingle || s == SongTypeAlbum
}

type EventType string

const (
	EventTypeVideo EventType = "VIDEO"
	EventTypeImage EventType = "IMAGE"
)

type EventStatus string

const (
	EventStatusComing   EventStatus = "COMING"
	EventStatusActive   EventStatus = "ACTIVE"
	EventStatusPassed   EventStatus = "PASSED"
	EventStatusLive     EventStatus = "LIVE"
	EventStatusCanceled EventStatus = "CANCELED"
)
