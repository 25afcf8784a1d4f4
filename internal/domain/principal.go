package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PrincipalKind string

const (
	KindCustomer PrincipalKind = "customer"
	KindAdmin    PrincipalKind = "admin"
)

// Customer and Admin live in disjoint collections; an email is unique only
// within its own kind.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
