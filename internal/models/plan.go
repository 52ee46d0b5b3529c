package models

// Plan тарифный план. Справочные данные, только для чтения.
type Plan struct {
	PlanID string  `json:"planId" bson:"planId"`
	Title  string  `json:"title" bson:"title"`
	Period string  `json:"period" bson:"period"` // Например "1 month", "7 days"
	Price  float64 `json:"price" bson:"price"`   // Цена в основных единицах валюты
}
