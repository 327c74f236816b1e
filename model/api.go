package model

type StatsRequest struct {
	Username string `json:"username"`
}

type BatchStatsRequest struct {
	Usernames []string `json:"usernames"`
}

type StatsResponse struct {
	Data StatsRecord `json:"data"`
}

type BatchStatsError struct {
	Username string    `json:"username"`
	Code     ErrorKind `json:"code"`
	Error    string    `json:"error"`
}

type BatchStatsResponse struct {
	Data   []StatsRecord     `json:"data"`
	Errors []BatchStatsError `json:"errors"`
}

// BatchStatsResult is the outcome of a single username inside a batch
type BatchStatsResult struct {
	Index    int
	Username string
	Record   StatsRecord
	Err      error
}
