package models

import "time"

// User is the identity-provider account record returned on registration.
type User struct {
	UID           string         `bson:"uid" json:"uid"`
	Email         string         `bson:"email" json:"email"`
	EmailVerified bool           `bson:"emailVerified" json:"emailVerified"`
	Disabled      bool           `bson:"disabled" json:"disabled"`
	PasswordHash  string         `bson:"passwordHash" json:"-"`
	Metadata      UserMetadata   `bson:"metadata" json:"metadata"`
	ProviderData  []UserProvider `bson:"providerData" json:"providerData"`
}

type UserMetadata struct {
	CreationTime   time.Time  `bson:"creationTime" json:"creationTime"`
	LastSignInTime *time.Time `bson:"lastSignInTime,omitempty" json:"lastSignInTime"`
}

// UserProvider describes one sign-in method linked to the account.
type UserProvider struct {
	UID        string `bson:"uid" json:"uid"`
	Email      string `bson:"email" json:"email"`
	ProviderID string `bson:"providerId" json:"providerId"`
}

// PasswordProviderID identifies email/password accounts.
const PasswordProviderID = "password"
