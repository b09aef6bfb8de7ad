package domain

// Service is a registered OWS backend endpoint. The URL is stored in its
// base form (query string and fragment stripped) and is unique across the
// registry, as is the name.
type Service struct {
	Name   string `bson:"name" json:"name"`
	URL    string `bson:"url" json:"url"`
	Type   string `bson:"type" json:"type"`
	Public bool   `bson:"public" json:"public"`
	Auth   string `bson:"auth" json:"auth"`
}
