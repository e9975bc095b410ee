package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mytunes-api/pkg/enum"
)

// User is a registered account. Password holds the bcrypt hash and never
// leaves the store layer through JSON.
type User struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName   string        `bson:"firstName" json:"firstName"`
	LastName    string        `bson:"lastName" json:"lastName"`
	Email       string        `bson:"email" json:"email"`
	PhoneNumber string        `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Password    string        `bson:"password" json:"-"`
	Picture     string        `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
	Deleted     bool          `bson:"deleted,omitempty" json:"-"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Song struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Type              enum.SongType `bson:"type" json:"type"`
	ParentalAdvisory  bool          `bson:"parentalAdvisory" json:"parentalAdvisory"`
	Favorite          bool          `bson:"favorite" json:"favorite"`
	MostPlayed        bool          `bson:"mostPlayed" json:"mostPlayed"`
	New               bool          `bson:"new" json:"new"`
	Title             string        `bson:"title" json:"title"`
	Artist            string        `bson:"artist" json:"artist"`
	CoArtists         []string      `bson:"coArtists,omitempty" json:"coArtists,omitempty"`
	Album             string        `bson:"album,omitempty" json:"album,omitempty"`
	Image             string        `bson:"image,omitempty" json:"image,omitempty"`
	File              string        `bson:"file" json:"file"`
	CreatedBy         string        `bson:"createdBy,omitempty" json:"-"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
	Deleted           bool          `bson:"deleted,omitempty" json:"-"`
}

type Directory struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Path      string        `bson:"path" json:"path"`
	CreatedBy string        `bson:"createdBy,omitempty" json:"-"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
	Deleted   bool          `bson:"deleted,omitempty" json:"-"`
}

type Event struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Type        enum.EventType   `bson:"type" json:"type"`
	Title       string           `bson:"title" json:"title"`
	Description string           `bson:"description" json:"description"`
	File        string           `bson:"file" json:"file"`
	ButtonTitle string           `bson:"buttonTitle,omitempty" json:"buttonTitle,omitempty"`
	ButtonLink  string           `bson:"buttonLink,omitempty" json:"buttonLink,omitempty"`
	Status      enum.EventStatus `bson:"status" json:"status"`
	Time        int64            `bson:"time,omitempty" json:"time,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
	Deleted     bool             `bson:"deleted,omitempty" json:"-"`
}
