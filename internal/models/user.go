package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role est l'énumération fermée des rôles plantNet.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// ValidRole vérifie qu'une valeur appartient bien à l'énumération.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Statuts de la demande "devenir vendeur".
const (
	StatusRequested = "Requested"
	StatusVerified  = "Verified"
)

// Contact est l'instantané dénormalisé (nom, email, image) copié dans les
// plantes et les commandes au moment de l'écriture.
type Contact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp" json:"timestamp"`
}
