package validators

import "go.mongodb.org/mongo-driver/bson"

var ClassValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "instructor", "start_time", "total_slots", "booked_slots"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"instructor": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"start_time": bson.M{
				"bsonType": "date",
			},
			"total_slots": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},
			"booked_slots": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},
		},
	},
}
