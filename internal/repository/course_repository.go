package repository

import (
	"context"
	"errors"

	"manabiya-quiz/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// errInvalidID covers every ObjectIDFromHex failure, wrong length and
// non-hex bytes alike. An id that cannot address a document is not-found.
var errInvalidID = errors.New("invalid object id")

// CourseRepository reads course documents owned by the course service.
// Nothing in this service ever writes to the collection.
type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errInvalidID
	}
	var course models.Course
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, errInvalidID)
}
