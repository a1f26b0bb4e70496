package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	errFakeNotFound  = errors.New("fake: not found")
	errFakeDuplicate = errors.New("fake: duplicate attempt")
)

type fakeCourses struct {
	courses map[string]*models.Course
}

func newFakeCourses(courses ...*models.Course) *fakeCourses {
	f := &fakeCourses{courses: map[string]*models.Course{}}
	for _, c := range courses {
		f.courses[c.ID.Hex()] = c
	}
	return f
}

func (f *fakeCourses) FindByID(_ context.Context, id string) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return c, nil
}

func (f *fakeCourses) IsNotFound(err error) bool {
	return errors.Is(err, errFakeNotFound)
}

type fakeSubmissions struct {
	subs        []models.Submission
	failNextDup bool
}

func (f *fakeSubmissions) Create(_ context.Context, sub *models.Submission) error {
	if f.failNextDup {
		f.failNextDup = false
		return errFakeDuplicate
	}
	for _, existing := range f.subs {
		if existing.QuizRef == sub.QuizRef &&
			existing.StudentID == sub.StudentID &&
			existing.AttemptNumber == sub.AttemptNumber {
			return errFakeDuplicate
		}
	}
	sub.ID = primitive.NewObjectID()
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubmissions) FindByID(_ context.Context, id string) (*models.Submission, error) {
	for i := range f.subs {
		if f.subs[i].ID.Hex() == id {
			clone := f.subs[i]
			return &clone, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeSubmissions) FindByStudent(_ context.Context, ref models.QuizRef, studentID string) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.subs {
		if s.QuizRef == ref && s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber > out[j].AttemptNumber })
	return out, nil
}

func (f *fakeSubmissions) CountByStudent(ctx context.Context, ref models.QuizRef, studentID string) (int, error) {
	subs, err := f.FindByStudent(ctx, ref, studentID)
	return len(subs), err
}

func (f *fakeSubmissions) FindByQuiz(_ context.Context, ref models.QuizRef) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.subs {
		if s.QuizRef == ref {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (f *fakeSubmissions) ApplyGrade(_ context.Context, id string, graded models.OpenEndedAnswer, summary grading.Summary) error {
	for i := range f.subs {
		if f.subs[i].ID.Hex() == id {
			f.subs[i].OpenEnded = &graded
			f.subs[i].Score = summary.Score
			f.subs[i].TotalPoints = summary.TotalPoints
			f.subs[i].Percentage = summary.Percentage
			f.subs[i].Passed = summary.Passed
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeSubmissions) IsDuplicate(err error) bool {
	return errors.Is(err, errFakeDuplicate)
}

func (f *fakeSubmissions) IsNotFound(err error) bool {
	return errors.Is(err, errFakeNotFound)
}

// Fixture builders shared by the service tests.

func mcqCourse(published, allowMultiple, showAnswers bool) (*models.Course, models.QuizRef) {
	course := &models.Course{
		ID:    primitive.NewObjectID(),
		Title: "기초 일본어",
		Curriculum: models.Curriculum{
			Modules: []models.CourseModule{
				{
					Title: "ひらがな",
					Items: []models.ModuleItem{
						{Title: "イントロ動画", ItemType: "video", Published: true},
						{
							Title:     "確認クイズ",
							ItemType:  models.ItemTypeQuiz,
							Published: published,
							Quiz: &models.QuizDefinition{
								QuizType:              models.QuizTypeMCQ,
								TimeLimitMinutes:      10,
								PassingScore:          60,
								AllowMultipleAttempts: allowMultiple,
								MCQ: &models.MCQVariant{
									ShowAnswersAfterSubmission: showAnswers,
									Questions: []models.MCQQuestion{
										{
											Text:   "「あ」の読みは？",
											Points: 5,
											Options: []models.MCQOption{
												{Text: "a", IsCorrect: true},
												{Text: "i"},
												{Text: "u"},
											},
										},
										{
											Text:   "「ん」の読みは？",
											Points: 5,
											Options: []models.MCQOption{
												{Text: "mu"},
												{Text: "n", IsCorrect: true},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	ref := models.QuizRef{CourseID: course.ID.Hex(), ModuleIndex: 0, ItemIndex: 1}
	return course, ref
}

func openEndedCourse(totalPoints, passingScore float64) (*models.Course, models.QuizRef) {
	course := &models.Course{
		ID:    primitive.NewObjectID(),
		Title: "作文コース",
		Curriculum: models.Curriculum{
			Modules: []models.CourseModule{
				{
					Title: "エッセイ",
					Items: []models.ModuleItem{
						{
							Title:     "自己紹介文を書く",
							ItemType:  models.ItemTypeQuiz,
							Published: true,
							Quiz: &models.QuizDefinition{
								QuizType:              models.QuizTypeOpenEnded,
								PassingScore:          passingScore,
								AllowMultipleAttempts: true,
								OpenEnded: &models.OpenEndedVariant{
									Question:         "自己紹介を200字で書いてください。",
									AcceptTextAnswer: true,
									AcceptFileUpload: true,
									TotalPoints:      totalPoints,
								},
							},
						},
					},
				},
			},
		},
	}
	ref := models.QuizRef{CourseID: course.ID.Hex(), ModuleIndex: 0, ItemIndex: 0}
	return course, ref
}

func fixedNow() time.Time {
	return time.Date(2025, 4, 7, 10, 30, 0, 0, time.UTC)
}

var student = Identity{ID: "student-1", DisplayName: "田中太郎", Email: "tanaka@example.jp"}
var instructor = Identity{ID: "instructor-1", DisplayName: "山本先生"}
