package models

// Departure adalah bentuk ringkas satu keberangkatan dari NS departures API.
type Departure struct {
	Direction        string    `json:"direction"`
	Name             string    `json:"name"`
	PlannedDeparture NaiveTime `json:"planned_departure"`
	PlannedTrack     string    `json:"planned_track"`
	TrainCategory    string    `json:"train_category"`
	Cancelled        bool      `json:"cancelled"`
}
