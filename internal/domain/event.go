package domain

// Event is something users can sign up for. Events are created by the demo
// seeder only; the reservation core never writes them.
type Event struct {
	ID          int64
	Title       string
	Description string
	Location    string
}
