package domain

// SensorReading is one simulated sample from a sensor.
type SensorReading struct {
	SensorID string  `json:"sensor_id"`
	Value    float64 `json:"value"`
}

// SensorData is the aggregate payload served to dashboards.
type SensorData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}
