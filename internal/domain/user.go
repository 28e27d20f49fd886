package domain

// GeoPoint is the API's GeoJSON-style location: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address"`
}

type UserProfile struct {
	ID              string   `json:"_id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	PhoneNumber     string   `json:"phone_number"`
	Location        GeoPoint `json:"location"`
	IsAdmin         bool     `json:"is_admin"`
	IsActive        bool     `json:"is_active"`
	ProfileImageURL *string  `json:"profile_image_url"`
	CreatedAt       string   `json:"created_at"`
}

type Registration struct {
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	PhoneNumber string   `json:"phone_number"`
	Location    GeoPoint `json:"location"`
	Password    string   `json:"password"`
}

// ProfileUpdate carries only the editable fields; nil means "leave unchanged".
type ProfileUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type LocationUpdate struct {
	Latitude  float64
	Longitude float64
	Address   string
}

type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
