package market

// chartResponse 行情序列接口响应
// points的key为秒级时间戳字符串，v[0]为价格
type chartResponse struct {
	Data struct {
		Points map[string]chartPoint `json:"points"`
	} `json:"data"`
	Status struct {
		ErrorCode    string `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

type chartPoint struct {
	V []float64 `json:"v"`
}
