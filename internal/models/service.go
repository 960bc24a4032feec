package models

type ServiceCategory struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

type Service struct {
	ID         string `bson:"_id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Price      int64  `bson:"price" json:"price"`       // minor currency units
	Duration   int    `bson:"duration" json:"duration"` // minutes
	CategoryID string `bson:"category_id" json:"category_id"`
}

type ServiceDetail struct {
	Service  `bson:",inline"`
	Category *ServiceCategory `bson:"service_categories,omitempty" json:"service_categories"`
}
