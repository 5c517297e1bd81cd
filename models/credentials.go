package models

// Identity describes who performed a mutation. The display name is captured
// at write time and stored with the change, without a foreign key.
type Identity struct {
	ActorId   string
	ActorName string
}

type Credentials struct {
	ActorIdentity Identity
}
