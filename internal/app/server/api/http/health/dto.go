package health

type Input struct{}

type Output struct {
	Body Response
}

// Response reports service liveness and whether the database answers.
type Response struct {
	Status   string `json:"status" example:"OK" doc:"Service status"`
	Database string `json:"database" example:"OK" doc:"Database connectivity"`
}
