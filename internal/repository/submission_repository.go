package repository

import (
	"context"
	"errors"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

// EnsureIndexes creates the unique compound index on the attempt identity.
// Two concurrent submissions racing for the same attempt number make the
// loser fail with a duplicate-key error instead of silently double-inserting.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "course_id", Value: 1},
			{Key: "module_index", Value: 1},
			{Key: "item_index", Value: 1},
			{Key: "student_id", Value: 1},
			{Key: "attempt_number", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("attempt_identity"),
	})
	return err
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	res, err := r.Col.InsertOne(ctx, sub)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

// IsDuplicate reports whether err is the unique-index violation for the
// attempt identity.
func (r *SubmissionRepository) IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (r *SubmissionRepository) IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, errInvalidID)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errInvalidID
	}
	var sub models.Submission
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func refFilter(ref models.QuizRef) bson.M {
	return bson.M{
		"course_id":    ref.CourseID,
		"module_index": ref.ModuleIndex,
		"item_index":   ref.ItemIndex,
	}
}

// FindByStudent returns the student's submissions for one quiz, most recent
// attempt first.
func (r *SubmissionRepository) FindByStudent(ctx context.Context, ref models.QuizRef, studentID string) ([]models.Submission, error) {
	filter := refFilter(ref)
	filter["student_id"] = studentID
	opts := options.Find().SetSort(bson.D{{Key: "attempt_number", Value: -1}})
	return r.findAll(ctx, filter, opts)
}

// CountByStudent counts the student's existing attempts for one quiz.
func (r *SubmissionRepository) CountByStudent(ctx context.Context, ref models.QuizRef, studentID string) (int, error) {
	filter := refFilter(ref)
	filter["student_id"] = studentID
	n, err := r.Col.CountDocuments(ctx, filter)
	return int(n), err
}

// FindByQuiz returns every submission for one quiz, newest first.
func (r *SubmissionRepository) FindByQuiz(ctx context.Context, ref models.QuizRef) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	return r.findAll(ctx, refFilter(ref), opts)
}

// ApplyGrade overwrites the grading fields of one submission and mirrors the
// top-level score fields. Last write wins when two graders race.
func (r *SubmissionRepository) ApplyGrade(ctx context.Context, id string, graded models.OpenEndedAnswer, summary grading.Summary) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errInvalidID
	}
	update := bson.M{
		"open_ended":   graded,
		"score":        summary.Score,
		"total_points": summary.TotalPoints,
		"percentage":   summary.Percentage,
		"passed":       summary.Passed,
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *SubmissionRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Submission, error) {
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []models.Submission
	for cur.Next(ctx) {
		var s models.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, cur.Err()
}
