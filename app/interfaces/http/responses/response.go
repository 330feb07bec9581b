package responses

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

// BrokerStatus is the payload of the broker status route.
type BrokerStatus struct {
	Clients      int   `json:"clients"`
	Sessions     int   `json:"sessions"`
	CacheEntries int64 `json:"cache_entries"`
	Healthy      bool  `json:"healthy"`
}

const ResponseCodeOk = "000000"
