package favorites

// FieldName is the user document field holding the favorite alpha3 codes.
const FieldName = "favoriteCountries"

// UserDocument is the per-user document in the users collection. It may
// exist without the favorites field.
type UserDocument struct {
	ID                string   `bson:"_id"`
	FavoriteCountries []string `bson:"favoriteCountries,omitempty"`
}
