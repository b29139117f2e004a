package request

type InsightRequest struct {
	Question string `json:"question"`
}

type SaveInsightKeyRequest struct {
	APIKey string `json:"apiKey"`
}
