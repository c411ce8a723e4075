package model

type Cinema struct {
	Id       string `json:"_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Price    int64  `json:"price"`
}
