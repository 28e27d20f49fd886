package domain

type Room struct {
	ID            string   `json:"_id,omitempty"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	PricePerNight float64  `json:"price_per_night"`
	Capacity      int      `json:"capacity"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsAvailable   bool     `json:"is_available"`
}

// Accommodation is an immutable snapshot from the API; it is replaced wholesale
// on refetch, never field-patched.
type Accommodation struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"accommodation_type"`
	Location     GeoPoint `json:"location"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Amenities    []string `json:"amenities"`
	Rooms        []Room   `json:"rooms"`
	Images       []string `json:"images"`
	Rating       float64  `json:"rating"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`

	AverageRating *float64 `json:"average_rating,omitempty"`
	ReviewsCount  *int     `json:"reviews_count,omitempty"`
}

// Room lookup by id, falling back to name for rooms the API returns without ids.
func (a Accommodation) RoomByID(id string) (Room, bool) {
	for _, r := range a.Rooms {
		if r.ID == id || (r.ID == "" && r.Name == id) {
			return r, true
		}
	}
	return Room{}, false
}

type ReviewAuthor struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type Review struct {
	ID              string       `json:"_id"`
	Rating          float64      `json:"rating"`
	Comment         string       `json:"comment"`
	UserID          string       `json:"user_id"`
	AccommodationID string       `json:"accommodation_id"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       *string      `json:"updated_at"`
	User            ReviewAuthor `json:"user"`
}

type AccommodationsPage struct {
	Results    []Accommodation `json:"results"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
}

type ReviewsPage struct {
	Results       []Review `json:"results"`
	Page          int      `json:"page"`
	Limit         int      `json:"limit"`
	TotalCount    int      `json:"total_count"`
	TotalPages    int      `json:"total_pages"`
	AverageRating float64  `json:"average_rating"`
	ReviewsCount  int      `json:"reviews_count"`
}

type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc|desc
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	Distance  int // meters
	Page      int
	Limit     int
}
