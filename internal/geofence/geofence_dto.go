package geofence

type UpdateConfigRequest struct {
	Enabled     bool         `json:"enabled"`
	Center      *Coordinates `json:"center"`
	Radius      *float64     `json:"radius"`
	Description string       `json:"description"`
}

type CheckLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}
