package http

import (
	"time"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// timeFormat is the wire format for timestamps in API responses.
const timeFormat = time.RFC3339

// CreateJobResponse is the response body for an accepted job submission.
type CreateJobResponse struct {
	// JobID is the identifier to poll for the result
	JobID string `json:"job_id" example:"7e7a26a1-4f2c-4a5e-9a71-0a1f3f2a8a11"`

	// Status is the job's initial lifecycle state
	Status string `json:"status" example:"pending"`
}

// JobResponse is the response body for a job status query. Result is only
// present when the job is complete.
type JobResponse struct {
	JobID       string        `json:"job_id"`
	Status      string        `json:"status" example:"complete"`
	CreatedAt   string        `json:"created_at"`
	CompletedAt *string       `json:"completed_at,omitempty"`
	Error       string        `json:"error,omitempty"`
	Result      *JobResultDTO `json:"result,omitempty"`
}

// JobResultDTO holds a completed job's viable destinations.
type JobResultDTO struct {
	// Destinations lists viable destinations in submission order; a
	// destination without a valid flight for every traveler is omitted
	Destinations []DestinationResultDTO `json:"destinations"`
}

// DestinationResultDTO is one viable destination with per-traveler flights
// and group statistics.
type DestinationResultDTO struct {
	Destination     string              `json:"destination" example:"CUN"`
	DestinationName string              `json:"destination_name" example:"Cancun"`
	TravelerFlights []TravelerFlightDTO `json:"traveler_flights"`
	GroupStats      GroupStatsDTO       `json:"group_stats"`
}

// TravelerFlightDTO is one traveler's cheapest valid round trip.
type TravelerFlightDTO struct {
	TravelerName string          `json:"traveler_name" example:"Alice"`
	Origin       string          `json:"origin" example:"JFK"`
	Outbound     FlightOptionDTO `json:"outbound"`
	Return       FlightOptionDTO `json:"return"`
	TotalPrice   float64         `json:"total_price" example:"412.5"`
	Currency     string          `json:"currency" example:"USD"`
}

// FlightOptionDTO is one direction of a selected round trip.
type FlightOptionDTO struct {
	DepartureTime   string   `json:"departure_time" example:"2026-04-15T08:30:00Z"`
	ArrivalTime     string   `json:"arrival_time" example:"2026-04-15T12:05:00Z"`
	DurationMinutes int      `json:"duration_minutes" example:"215"`
	Stops           int      `json:"stops" example:"0"`
	Airline         string   `json:"airline" example:"AA"`
	FlightNumbers   []string `json:"flight_numbers" example:"AA123"`
	Price           float64  `json:"price" example:"206.25"`
}

// GroupStatsDTO holds aggregate price statistics for one destination.
type GroupStatsDTO struct {
	Currency         string    `json:"currency" example:"USD"`
	IndividualTotals []float64 `json:"individual_totals"`
	Total            float64   `json:"total" example:"1000"`
	Average          float64   `json:"average" example:"500"`
	Median           float64   `json:"median" example:"500"`
	Cheapest         float64   `json:"cheapest" example:"400"`
	MostExpensive    float64   `json:"most_expensive" example:"600"`
}

// ToCreateJobResponse builds the accepted-submission response.
func ToCreateJobResponse(jobID string) *CreateJobResponse {
	return &CreateJobResponse{
		JobID:  jobID,
		Status: string(domain.JobStatusPending),
	}
}

// ToJobResponse converts a job record and its optional result to the API
// response shape.
func ToJobResponse(job *domain.Job, result *domain.JobResult) *JobResponse {
	resp := &JobResponse{
		JobID:     job.ID,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt.Format(timeFormat),
		Error:     job.Error,
	}
	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format(timeFormat)
		resp.CompletedAt = &completed
	}
	if result != nil {
		resp.Result = ToJobResultDTO(result)
	}
	return resp
}

// ToJobResultDTO converts a domain.JobResult to its response shape.
func ToJobResultDTO(result *domain.JobResult) *JobResultDTO {
	dto := &JobResultDTO{
		Destinations: make([]DestinationResultDTO, len(result.Destinations)),
	}
	for i, dest := range result.Destinations {
		dto.Destinations[i] = toDestinationResultDTO(&dest)
	}
	return dto
}

func toDestinationResultDTO(dest *domain.DestinationResult) DestinationResultDTO {
	dto := DestinationResultDTO{
		Destination:     dest.Destination,
		DestinationName: dest.DestinationName,
		TravelerFlights: make([]TravelerFlightDTO, len(dest.TravelerFlights)),
		GroupStats: GroupStatsDTO{
			Currency:         dest.GroupStats.Currency,
			IndividualTotals: dest.GroupStats.IndividualTotals,
			Total:            dest.GroupStats.Total,
			Average:          dest.GroupStats.Average,
			Median:           dest.GroupStats.Median,
			Cheapest:         dest.GroupStats.Cheapest,
			MostExpensive:    dest.GroupStats.MostExpensive,
		},
	}
	for i, tf := range dest.TravelerFlights {
		dto.TravelerFlights[i] = TravelerFlightDTO{
			TravelerName: tf.TravelerName,
			Origin:       tf.Origin,
			Outbound:     toFlightOptionDTO(tf.Outbound),
			Return:       toFlightOptionDTO(tf.Return),
			TotalPrice:   tf.TotalPrice,
			Currency:     tf.Currency,
		}
	}
	return dto
}

func toFlightOptionDTO(opt domain.FlightOption) FlightOptionDTO {
	return FlightOptionDTO{
		DepartureTime:   opt.DepartureTime.Format(timeFormat),
		ArrivalTime:     opt.ArrivalTime.Format(timeFormat),
		DurationMinutes: opt.DurationMinutes,
		Stops:           opt.Stops,
		Airline:         opt.Airline,
		FlightNumbers:   opt.FlightNumbers,
		Price:           opt.Price,
	}
}
