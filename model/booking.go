package model

type BookingRequest struct {
	UserId         string   `json:"userId" validate:"required"`
	MovieId        string   `json:"movieId" validate:"required"`
	CinemaId       string   `json:"cinemaId" validate:"required"`
	CinemaName     string   `json:"cinemaName"`
	MovieTitle     string   `json:"movieTitle"`
	MoviePoster    string   `json:"moviePoster"`
	OrderNumber    string   `json:"orderNumber" validate:"required"`
	PaymentMethod  string   `json:"paymentMethod"`
	Seats          []string `json:"seats" validate:"required,min=1,dive,required"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	TicketPrice    int64    `json:"ticketPrice"`
	TotalPrice     int64    `json:"totalPrice"`
	TotalTickets   int      `json:"totalTickets"`
	ConvenienceFee int64    `json:"convenienceFee"`
	Status         string   `json:"status"`
	PaymentSuccess bool     `json:"paymentSuccess"`
}

type BookingConfirmation struct {
	Id          string `json:"_id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}
