package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking is never deleted client-side; cancellation is a status transition.
type Booking struct {
	ID              string        `json:"_id"`
	AccommodationID string        `json:"accommodation_id"`
	RoomID          string        `json:"room_id"`
	CheckInDate     string        `json:"check_in_date"`
	CheckOutDate    string        `json:"check_out_date"`
	Guests          int           `json:"guests"`
	SpecialRequests string        `json:"special_requests"`
	UserID          string        `json:"user_id"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"booking_status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       string        `json:"created_at"`

	Accommodation *Accommodation `json:"accommodation_details,omitempty"`
}

type BookingRequest struct {
	AccommodationID string `json:"accommodation_id"`
	RoomID          string `json:"room_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type PaymentRequest struct {
	BookingID     string `json:"booking_id"`
	PaymentMethod string `json:"payment_method"` // card|paypal
	Email         string `json:"email"`
	CallbackURL   string `json:"callback_url"`
}

type PaymentResult struct {
	Reference   string `json:"reference,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	Status      string `json:"status,omitempty"`
}
