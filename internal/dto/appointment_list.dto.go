package dto

type AppointmentListDTO struct {
	ID              uint    `json:"id"`
	BookingID       string  `json:"booking_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Duration        string  `json:"duration"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	CustomerName    string  `json:"customer_name"`
	StylistName     string  `json:"stylist_name"`
	PortfolioTitle  string  `json:"portfolio_title"`
}
