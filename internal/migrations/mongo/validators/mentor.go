package validators

import "go.mongodb.org/mongo-driver/bson"

var MentorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"email",
			"skills",
			"experience",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^[^@\\s]+@[^@\\s]+$",
			},

			"skills": bson.M{
				"bsonType": "array",
				"maxItems": 50,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 50,
				},
			},

			"experience": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  80,
			},
		},
	},
}
