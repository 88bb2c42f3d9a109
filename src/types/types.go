package types

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "PENDING"
	BOOKING_APPROVED  BookingStatus = "APPROVED"
	BOOKING_PAID      BookingStatus = "PAID"
	BOOKING_DENIED    BookingStatus = "DENIED"
	BOOKING_CONFIRMED BookingStatus = "CONFIRMED"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	EventType string `json:"event_type" binding:"required"`
	Date      string `json:"date" binding:"required,bookingdate"`
	Location  string `json:"location" binding:"required"`
	Amount    int    `json:"amount"`
	Message   string `json:"message"`
}

type UpdateBookingRequestBody struct {
	Amount    *int    `json:"amount"`
	AdminNote *string `json:"admin_note"`
}

type BulkActionRequestBody struct {
	IDs       []uint `json:"ids" binding:"required,min=1"`
	AdminNote string `json:"admin_note"`
}

type AdminLoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GalleryItem struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title"`
}

type PaymentPageResponse struct {
	State        string        `json:"state"`
	Status       BookingStatus `json:"status"`
	BookingID    uint          `json:"booking_id"`
	UPIID        string        `json:"upi_id,omitempty"`
	UPILink      string        `json:"upi_link,omitempty"`
	PayAmount    int           `json:"pay_amount,omitempty"`
	BusinessName string        `json:"business_name,omitempty"`
}
