package model

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailPattern mirrors the pattern enforced by the storage-level schema:
// a simple local@domain.tld shape, not full RFC 5322.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinAge is the minimum age accepted for a profile.
const MinAge = 18

// Address is the optional embedded address document on a User.
// All three fields are required whenever an address is present.
type Address struct {
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	Zip     int    `bson:"zip" json:"zip"`
}

// User represents one profile in the users collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Age       int                `bson:"age" json:"age"`
	Address   *Address           `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// Validate checks the user against the profile schema rules and returns a
// *ValidationError listing every violation, or nil when the user is valid.
func (u *User) Validate() error {
	var violations []Violation

	if u.Name == "" {
		violations = append(violations, Violation{Field: "name", Message: "name is required"})
	}

	switch {
	case u.Email == "":
		violations = append(violations, Violation{Field: "email", Message: "email is required"})
	case !emailPattern.MatchString(u.Email):
		violations = append(violations, Violation{Field: "email", Message: "email must match local@domain.tld"})
	}

	if u.Age < MinAge {
		violations = append(violations, Violation{Field: "age", Message: "age must be at least 18"})
	}

	if u.Address != nil {
		if u.Address.City == "" {
			violations = append(violations, Violation{Field: "address.city", Message: "city is required"})
		}
		if u.Address.Country == "" {
			violations = append(violations, Violation{Field: "address.country", Message: "country is required"})
		}
		if u.Address.Zip <= 0 {
			violations = append(violations, Violation{Field: "address.zip", Message: "zip is required and must be a positive integer"})
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
