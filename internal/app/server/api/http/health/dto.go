package health

import "time"

const (
	StatusOK       = "OK"
	StatusDegraded = "Degraded"
)

type Input struct{}

type Output struct {
	Status int
	Body   Response
}

// Response состояние сервиса и результат каждой проверки зависимостей
type Response struct {
	Status  string            `json:"status" enum:"OK,Degraded" doc:"Overall service status"`
	Service string            `json:"service" example:"siigosync"`
	Time    time.Time         `json:"time" format:"date-time"`
	Checks  map[string]string `json:"checks,omitempty" doc:"Dependency name to ok or error text"`
}
