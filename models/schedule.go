package models

// Schedule document fields as stored in the "agendamentos" collection.
const (
	ScheduleCollection = "agendamentos"

	FieldUserID      = "userId"
	FieldTrailID     = "trailId"
	FieldScheduledAt = "scheduledAt"
	FieldStatus      = "status"

	StatusConfirmed = "confirmed"
)

// Schedule is a user's booking of a trail. The trail fields are denormalized
// from the referenced trail when the schedule is read.
type Schedule struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	TrailID     string `json:"trailId"`
	ScheduledAt string `json:"scheduledAt"`
	Status      string `json:"status"`

	TrailName  string `json:"trailName"`
	Location   string `json:"location"`
	Date       string `json:"date"`
	Difficulty string `json:"difficulty"`
	ImageIndex int    `json:"imageIndex"`
}
