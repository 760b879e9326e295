package app

import "time"

// startTimeLayout is the wire format for screening start times.
const startTimeLayout = "2006-01-02 15:04"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// RejectionResponse carries the full list of reasons a booking or a
// screening was refused, one human-readable message per problem.
type RejectionResponse struct {
	Message   string    `json:"message"`
	Reasons   []string  `json:"reasons"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AccountResponse struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type MovieRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Genre    string `json:"genre" validate:"required,max=50"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

type MovieUpdateRequest struct {
	Genre    string `json:"genre" validate:"required,max=50"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

type MovieResponse struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

type RoomRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Rows    int    `json:"rows" validate:"required,gt=0"`
	Columns int    `json:"columns" validate:"required,gt=0"`
}

type RoomUpdateRequest struct {
	Rows    int `json:"rows" validate:"required,gt=0"`
	Columns int `json:"columns" validate:"required,gt=0"`
}

type RoomResponse struct {
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Capacity int    `json:"capacity"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// ScreeningRequest identifies a screening by its natural key. It doubles
// as the create and the delete payload.
type ScreeningRequest struct {
	MovieTitle string `json:"movieTitle" validate:"required"`
	RoomName   string `json:"roomName" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
}

type ScreeningListResponse struct {
	Screenings []string `json:"screenings"`
}

type SeatRequest struct {
	Row    int `json:"row" validate:"required,gt=0"`
	Column int `json:"column" validate:"required,gt=0"`
}

type BookingRequest struct {
	MovieTitle string        `json:"movieTitle" validate:"required"`
	RoomName   string        `json:"roomName" validate:"required"`
	StartTime  string        `json:"startTime" validate:"required"`
	Seats      []SeatRequest `json:"seats" validate:"required,min=1,dive"`
}

type BookingResponse struct {
	Reference    string        `json:"reference"`
	MovieTitle   string        `json:"movieTitle"`
	RoomName     string        `json:"roomName"`
	StartTime    string        `json:"startTime"`
	Seats        []SeatRequest `json:"seats"`
	PerSeatPrice int           `json:"perSeatPrice"`
	TotalPrice   int           `json:"totalPrice"`
}

type BookingListResponse struct {
	Bookings []string `json:"bookings"`
}

type PriceQuoteResponse struct {
	MovieTitle string `json:"movieTitle"`
	RoomName   string `json:"roomName"`
	StartTime  string `json:"startTime"`
	SeatCount  int    `json:"seatCount"`
	TotalPrice int    `json:"totalPrice"`
}

type BasePriceRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

type BasePriceResponse struct {
	Amount int `json:"amount"`
}

type PriceComponentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Fee  int    `json:"fee" validate:"required"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
