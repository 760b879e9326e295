package integration_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/app"
	"github.com/stretchr/testify/suite"
)

type TicketFlowSuite struct {
	BaseSuite
}

func TestTicketFlowSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(TicketFlowSuite))
}

func (s *TicketFlowSuite) adminClient() *apiClient {
	admin := newClient(s.T(), s.server)
	admin.login(adminUsername, adminPassword)
	return admin
}

// seedScreening creates the default movie, room and screening used by
// most scenarios.
func (s *TicketFlowSuite) seedScreening(admin *apiClient, startTime string) {
	res := admin.do(http.MethodPost, "/movies", app.MovieRequest{Title: "Spirited Away", Genre: "animation", Duration: 125})
	drain(res)
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res = admin.do(http.MethodPost, "/rooms", app.RoomRequest{Name: "Pedersoli", Rows: 10, Columns: 20})
	drain(res)
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res = admin.do(http.MethodPost, "/screenings", app.ScreeningRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  startTime,
	})
	drain(res)
	s.Require().Equal(http.StatusCreated, res.StatusCode)
}

func (s *TicketFlowSuite) TestHealthcheck() {
	client := newClient(s.T(), s.server)

	res := client.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, res.StatusCode)

	resp := decode[app.HealthcheckResponse](s.T(), res)
	s.Equal("UP", resp.Status)
}

func (s *TicketFlowSuite) TestAccountLifecycle() {
	client := newClient(s.T(), s.server)

	client.register("sanyi", "sanyi@example.com", "Abcdef1!")
	client.login("sanyi", "Abcdef1!")

	res := client.do(http.MethodGet, "/accounts/me", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	me := decode[app.AccountResponse](s.T(), res)
	s.Equal("sanyi", me.Username)
	s.False(me.IsAdmin)

	res = client.do(http.MethodPost, "/accounts/logout", nil)
	drain(res)
	s.Equal(http.StatusNoContent, res.StatusCode)

	res = client.do(http.MethodGet, "/accounts/me", nil)
	drain(res)
	s.Equal(http.StatusUnauthorized, res.StatusCode)
}

func (s *TicketFlowSuite) TestCatalogRequiresAdmin() {
	movie := app.MovieRequest{Title: "Satantango", Genre: "drama", Duration: 450}

	anonymous := newClient(s.T(), s.server)
	res := anonymous.do(http.MethodPost, "/movies", movie)
	drain(res)
	s.Equal(http.StatusUnauthorized, res.StatusCode)

	user := newClient(s.T(), s.server)
	user.register("sanyi", "sanyi@example.com", "Abcdef1!")
	user.login("sanyi", "Abcdef1!")

	res = user.do(http.MethodPost, "/movies", movie)
	drain(res)
	s.Equal(http.StatusForbidden, res.StatusCode)

	admin := s.adminClient()
	res = admin.do(http.MethodPost, "/movies", movie)
	drain(res)
	s.Equal(http.StatusCreated, res.StatusCode)

	res = admin.do(http.MethodPost, "/movies", movie)
	drain(res)
	s.Equal(http.StatusBadRequest, res.StatusCode)

	// reads stay public
	res = anonymous.do(http.MethodGet, "/movies", nil)
	s.Equal(http.StatusOK, res.StatusCode)

	list := decode[app.MovieListResponse](s.T(), res)
	s.Len(list.Movies, 1)
}

func (s *TicketFlowSuite) TestBookingFlow() {
	admin := s.adminClient()
	s.seedScreening(admin, "2026-09-01 16:00")

	res := admin.do(http.MethodPost, "/price-components", app.PriceComponentRequest{Name: "vip room", Fee: 100})
	drain(res)
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res = admin.do(http.MethodPost, "/price-components/vip%20room/rooms/Pedersoli", nil)
	drain(res)
	s.Require().Equal(http.StatusNoContent, res.StatusCode)

	res = admin.do(http.MethodPost, "/price-components", app.PriceComponentRequest{Name: "3d glasses", Fee: 200})
	drain(res)
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res = admin.do(http.MethodPost, "/price-components/3d%20glasses/movies/Spirited%20Away", nil)
	drain(res)
	s.Require().Equal(http.StatusNoContent, res.StatusCode)

	res = admin.do(http.MethodGet, "/price?movieTitle=Spirited+Away&roomName=Pedersoli&startTime=2026-09-01+16:00&seatCount=2", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	quote := decode[app.PriceQuoteResponse](s.T(), res)
	s.Equal(3600, quote.TotalPrice)

	user := newClient(s.T(), s.server)
	user.register("sanyi", "sanyi@example.com", "Abcdef1!")
	user.login("sanyi", "Abcdef1!")

	res = user.do(http.MethodPost, "/bookings", app.BookingRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 16:00",
		Seats:      []app.SeatRequest{{Row: 1, Column: 2}, {Row: 1, Column: 1}},
	})
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	receipt := decode[app.BookingResponse](s.T(), res)
	s.NotEmpty(receipt.Reference)
	s.Equal(1800, receipt.PerSeatPrice)
	s.Equal(3600, receipt.TotalPrice)
	s.Equal([]app.SeatRequest{{Row: 1, Column: 1}, {Row: 1, Column: 2}}, receipt.Seats)

	res = user.do(http.MethodGet, "/bookings", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	listing := decode[app.BookingListResponse](s.T(), res)
	s.Equal(
		[]string{"Seats (1,1), (1,2) on Spirited Away in room Pedersoli starting at 2026-09-01 16:00 for 3600 HUF"},
		listing.Bookings,
	)

	s.Eventually(func() bool {
		emails := s.app.Mailer.GetSentEmails()
		return len(emails) == 1 && emails[0].Recipient == "sanyi@example.com"
	}, 2*time.Second, 20*time.Millisecond)

	// the same seat cannot be booked twice, even by the same account
	res = user.do(http.MethodPost, "/bookings", app.BookingRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 16:00",
		Seats:      []app.SeatRequest{{Row: 1, Column: 1}},
	})
	s.Require().Equal(http.StatusUnprocessableEntity, res.StatusCode)

	rejection := decode[app.RejectionResponse](s.T(), res)
	s.Equal([]string{"Seat (1,1) is already taken"}, rejection.Reasons)
}

func (s *TicketFlowSuite) TestSeatValidationMessages() {
	admin := s.adminClient()
	s.seedScreening(admin, "2026-09-01 16:00")

	user := newClient(s.T(), s.server)
	user.register("sanyi", "sanyi@example.com", "Abcdef1!")
	user.login("sanyi", "Abcdef1!")

	res := user.do(http.MethodPost, "/bookings", app.BookingRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 16:00",
		Seats:      []app.SeatRequest{{Row: 11, Column: 5}, {Row: 2, Column: 21}, {Row: 3, Column: 3}},
	})
	s.Require().Equal(http.StatusUnprocessableEntity, res.StatusCode)

	rejection := decode[app.RejectionResponse](s.T(), res)
	s.Equal([]string{
		"Seat (11,5) is invalid, room has 10 rows and 20 columns",
		"Seat (2,21) is invalid, room has 10 rows and 20 columns",
	}, rejection.Reasons)

	// a rejected request books nothing, so the valid seat stays free
	res = user.do(http.MethodPost, "/bookings", app.BookingRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 16:00",
		Seats:      []app.SeatRequest{{Row: 3, Column: 3}},
	})
	drain(res)
	s.Equal(http.StatusCreated, res.StatusCode)
}

func (s *TicketFlowSuite) TestScheduleClash() {
	admin := s.adminClient()
	s.seedScreening(admin, "2026-09-01 16:00")

	// 16:00 + 125 minutes runs to 18:05, break until 18:15

	res := admin.do(http.MethodPost, "/screenings", app.ScreeningRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 17:00",
	})
	s.Require().Equal(http.StatusUnprocessableEntity, res.StatusCode)

	rejection := decode[app.RejectionResponse](s.T(), res)
	s.Equal([]string{"There is an overlapping screening"}, rejection.Reasons)

	res = admin.do(http.MethodPost, "/screenings", app.ScreeningRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 18:10",
	})
	s.Require().Equal(http.StatusUnprocessableEntity, res.StatusCode)

	rejection = decode[app.RejectionResponse](s.T(), res)
	s.Equal([]string{"This would start in the break period after another screening in this room"}, rejection.Reasons)

	res = admin.do(http.MethodPost, "/screenings", app.ScreeningRequest{
		MovieTitle: "Spirited Away",
		RoomName:   "Pedersoli",
		StartTime:  "2026-09-01 18:15",
	})
	drain(res)
	s.Equal(http.StatusCreated, res.StatusCode)
}

func (s *TicketFlowSuite) TestConcurrentSeatBooking() {
	admin := s.adminClient()
	s.seedScreening(admin, "2026-09-01 16:00")

	clients := make([]*apiClient, 2)
	for i, username := range []string{"alice", "bob"} {
		clients[i] = newClient(s.T(), s.server)
		clients[i].register(username, username+"@example.com", "Abcdef1!")
		clients[i].login(username, "Abcdef1!")
	}

	statuses := make([]int, 2)
	var wg sync.WaitGroup

	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			res := clients[i].do(http.MethodPost, "/bookings", app.BookingRequest{
				MovieTitle: "Spirited Away",
				RoomName:   "Pedersoli",
				StartTime:  "2026-09-01 16:00",
				Seats:      []app.SeatRequest{{Row: 5, Column: 5}},
			})
			drain(res)

			statuses[i] = res.StatusCode
		}(i)
	}

	wg.Wait()

	created := 0
	rejected := 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusUnprocessableEntity:
			rejected++
		}
	}

	s.Equal(1, created, "exactly one booking must win the seat")
	s.Equal(1, rejected, "the loser must be rejected, statuses: %v", statuses)

	var count int
	err := s.app.DB.QueryRow(s.T().Context(),
		`SELECT count(*) FROM bookings WHERE seat_row = 5 AND seat_col = 5`).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *TicketFlowSuite) TestConcurrentScreeningCreation() {
	admin := s.adminClient()
	s.seedScreening(admin, "2026-09-01 10:00")

	// both candidates fit the 10:00 screening's schedule but clash with
	// each other
	second := s.adminClient()

	statuses := make([]int, 2)
	var wg sync.WaitGroup

	for i, client := range []*apiClient{admin, second} {
		wg.Add(1)
		go func(i int, client *apiClient) {
			defer wg.Done()

			res := client.do(http.MethodPost, "/screenings", app.ScreeningRequest{
				MovieTitle: "Spirited Away",
				RoomName:   "Pedersoli",
				StartTime:  "2026-09-01 16:00",
			})
			drain(res)

			statuses[i] = res.StatusCode
		}(i, client)
	}

	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		}
	}

	s.Equal(1, created, "exactly one screening must be scheduled, statuses: %v", statuses)

	var count int
	err := s.app.DB.QueryRow(s.T().Context(), `SELECT count(*) FROM screenings`).Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)
}
