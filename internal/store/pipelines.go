package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// serviceJoin attaches the service category under "service_categories".
func serviceJoin() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colCategories},
			{Key: "localField", Value: "category_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "service_categories"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$service_categories"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// appointmentDetail matches appointments and joins service then category,
// producing documents shaped like models.AppointmentDetail.
func appointmentDetail(match bson.D, sortNewest bool, limit int64) mongo.Pipeline {
	p := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if sortNewest {
		p = append(p, bson.D{{Key: "$sort", Value: bson.D{{Key: "scheduled_at", Value: -1}}}})
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return append(p,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colServices},
			{Key: "localField", Value: "service_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "services"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$services"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colCategories},
			{Key: "localField", Value: "services.category_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "services.service_categories"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$services.service_categories"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		// the category lookup creates "services" even when the service is
		// gone; drop it so a dangling service_id decodes as a nil Service
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "services", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$services._id", false}}},
				"$services",
				"$$REMOVE",
			}}}},
		}}},
	)
}
